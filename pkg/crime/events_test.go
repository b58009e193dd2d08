package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func eventTypes(events []Event) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestWeaponFrameEvents(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0), obj("person", 0.9, 50, 0)),
	}
	events := EvaluateEvents(detections, nil, nil)
	require.Equal(t, []string{EventWeaponLikeObject, EventWeaponDetected}, eventTypes(events))

	require.Equal(t, SeverityCritical, events[0].Severity)
	require.InDelta(t, 0.9, events[0].Confidence, 1e-5)
	require.Equal(t, SourceObjectDetection, events[0].Source)
	require.Equal(t, "frame_0000.jpg", events[0].Frame)

	// Single weapon frame still yields the temporal event.
	require.Equal(t, SeverityCritical, events[1].Severity)
	require.InDelta(t, 0.75, events[1].Confidence, 1e-5)
	require.Equal(t, SourceTemporalAnalysis, events[1].Source)
}

func TestWeaponWithoutPersonsIsHigh(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0)),
	}
	events := EvaluateEvents(detections, nil, nil)
	require.Equal(t, SeverityHigh, events[0].Severity)
	require.InDelta(t, 0.7, events[0].Confidence, 1e-5)
}

func TestPersistentWeaponEvent(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("gun", 0.8, 0, 0)),
		frame(1, obj("gun", 0.8, 0, 0)),
	}
	events := EvaluateEvents(detections, nil, nil)
	types := eventTypes(events)
	require.Contains(t, types, EventWeaponPersistent)
	require.NotContains(t, types, EventWeaponDetected)
}

func TestCrowdActivityConfidence(t *testing.T) {
	small := frame(0)
	for i := 0; i < 4; i++ {
		small.Objects = append(small.Objects, obj("person", 0.9, float32(i)*100, 0))
	}
	events := EvaluateEvents([]nn.FrameDetections{small}, nil, nil)
	require.Len(t, events, 1)
	require.Equal(t, EventCrowdActivity, events[0].Type)
	require.InDelta(t, 0.6, events[0].Confidence, 1e-5)
	require.Equal(t, SeverityLow, events[0].Severity)

	big := frame(0)
	for i := 0; i < 9; i++ {
		big.Objects = append(big.Objects, obj("person", 0.9, float32(i)*100, 0))
	}
	events = EvaluateEvents([]nn.FrameDetections{big}, nil, nil)
	require.InDelta(t, 0.8, events[0].Confidence, 1e-5)
	require.Equal(t, SeverityMedium, events[0].Severity)
}

func TestValuablesWithMultiplePersons(t *testing.T) {
	detections := append(emptyFrames(9),
		frame(9,
			obj("handbag", 0.7, 0, 0),
			obj("person", 0.9, 100, 0),
			obj("person", 0.9, 200, 0),
		),
	)
	events := EvaluateEvents(detections, nil, nil)
	types := eventTypes(events)
	require.Contains(t, types, EventValuablesWithPersons)
	// Valuables spanning zero frames out of ten also raise the sudden
	// change event.
	require.Contains(t, types, EventValuableSuddenChange)
}

func TestActionProbabilityFloors(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("fighting", 0.05, false)),
	}
	events := EvaluateEvents(nil, actions, nil)
	require.Empty(t, events)

	actions = []nn.ActionClip{
		clip(0, act("fighting", 0.05, true)),
	}
	events = EvaluateEvents(nil, actions, nil)
	require.Len(t, events, 1)
	require.Equal(t, EventAssaultOrFight, events[0].Type)
	// 0.05 is below the critical cutoff for assault events.
	require.Equal(t, SeverityHigh, events[0].Severity)
}

func TestActionEventSeverityBands(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("punching person", 0.2, true)),
		clip(1, act("stealing wallet", 0.04, true)),
		clip(2, act("running away", 0.5, false)),
	}
	events := EvaluateEvents(nil, actions, nil)
	require.Equal(t, []string{EventAssaultOrFight, EventRobberyOrSnatching, EventChaseOrEscape}, eventTypes(events))
	require.Equal(t, SeverityCritical, events[0].Severity)
	require.Equal(t, SeverityMedium, events[1].Severity)
	require.Equal(t, SeverityHigh, events[2].Severity)
}

func TestArmedConflictCorrelation(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0), obj("person", 0.9, 50, 0)),
	}
	actions := []nn.ActionClip{
		clip(0, act("fighting", 0.3, true)),
	}
	events := EvaluateEvents(detections, actions, nil)
	last := events[len(events)-1]
	require.Equal(t, EventArmedConflict, last.Type)
	require.Equal(t, SeverityCritical, last.Severity)
	require.Equal(t, SourceCrossModal, last.Source)
	// Frame weapon event, temporal weapon event, fight action.
	require.Equal(t, 4, len(events))
}

func TestNoEventsOnEmptyInput(t *testing.T) {
	require.Empty(t, EvaluateEvents(nil, nil, nil))
	require.Empty(t, EvaluateEvents(emptyFrames(10), nil, nil))
}
