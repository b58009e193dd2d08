package nn

const (
	// DefaultClipLength is the maximum number of frames per action clip.
	DefaultClipLength = 50
	// DefaultNumClips caps how many overlapping clips we plan per video.
	DefaultNumClips = 5
	// MinActionFrames is the fewest frames action recognition can work
	// with. Below this, no clips are planned.
	MinActionFrames = 8
)

// PlanClips slices a video of totalFrames into up to numClips
// overlapping clips of up to clipLength frames, with 50% overlap. The
// returned clips have their index, type and frame range set, and empty
// predictions. Returns nil when the video is too short for action
// recognition.
func PlanClips(totalFrames, clipLength, numClips int) []ActionClip {
	if totalFrames < MinActionFrames {
		return nil
	}
	if clipLength <= 0 {
		clipLength = DefaultClipLength
	}
	if numClips <= 0 {
		numClips = DefaultNumClips
	}
	if clipLength > totalFrames {
		clipLength = totalFrames
	}
	stride := max(1, clipLength/2)
	actualClips := min(numClips, max(1, (totalFrames-clipLength)/stride+1))

	clips := []ActionClip{}
	for clipIdx := 0; clipIdx < actualClips; clipIdx++ {
		start := clipIdx * stride
		end := min(start+clipLength, totalFrames)
		if end == totalFrames && end-start < clipLength {
			start = max(0, totalFrames-clipLength)
		}
		if start >= totalFrames {
			break
		}
		clips = append(clips, ActionClip{
			ClipIndex:  clipIdx,
			ClipType:   clipPosition(clipIdx, actualClips),
			FrameRange: FrameRange{Start: start, End: end},
		})
	}
	return clips
}

func clipPosition(clipIdx, actualClips int) ClipType {
	position := 0.5
	if actualClips > 1 {
		position = float64(clipIdx) / float64(actualClips-1)
	}
	switch {
	case position < 0.25:
		return ClipBeginning
	case position > 0.75:
		return ClipEnd
	default:
		return ClipMiddle
	}
}
