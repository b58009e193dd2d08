package crime

// Config consolidates every tunable threshold of the crime analyzers.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	Weapon    WeaponConfig
	Violence  ViolenceConfig
	Theft     TheftConfig
	Suspicion SuspicionConfig
	Events    EventConfig
	Report    ReportConfig
}

type WeaponConfig struct {
	// Pixel distances between a weapon's center and a person's center.
	// Below ProximityReportDistance we record a proximity alert, and the
	// tighter bands drive the threat level.
	ProximityReportDistance   float32
	ProximityCriticalDistance float32
	ProximityModerateDistance float32
	// A weapon seen in more than this many frames escalates to high.
	HighThreatFrameCount int
}

type ViolenceConfig struct {
	// Weighted mean of action intensities, count saturation and
	// multi-person ratio combine into the violence score.
	ScoreMeanWeight        float32
	ScoreCountWeight       float32
	ScoreCountSaturation   float32
	ScoreMultiPersonWeight float32

	ExtremeScore  float32
	HighScore     float32
	ModerateScore float32
}

type TheftConfig struct {
	// An item counts as disappeared when it is seen in fewer than
	// RarePresenceRatio of all frames, in at least MinSightings frames,
	// and its first-to-last sighting span covers less than SpanRatio of
	// the video.
	RarePresenceRatio float32
	MinSightings      int
	SpanRatio         float32

	// Suspicion score per disappearance, picked by how brief the span was.
	BriefSpanRatio    float32
	BriefSuspicion    float32
	ExtendedSuspicion float32

	// Probability scaling depending on which signals agree.
	CombinedBoost     float32
	DisappearanceDamp float32
	ActionDamp        float32

	HighProbability float32
}

type SuspicionConfig struct {
	// Loitering: ratio of frames containing a person.
	LoiterFrameRatio      float32
	LoiterMaxConfidence   float32
	LoiterConfidenceScale float32

	// Group: at least GroupMinPersons people in more than GroupFrameRatio
	// of frames.
	GroupMinPersons int
	GroupFrameRatio float32
	GroupConfidence float32

	// Score saturates at PatternScoreStep per pattern.
	PatternScoreStep float32
}

type EventConfig struct {
	WeaponObjectConfidenceArmed   float32
	WeaponObjectConfidenceAlone   float32
	ValuablesPersonsMinPersons    int
	ValuablesPersonsConfidence    float32
	CrowdMinPersons               int
	CrowdMediumPersons            int
	CrowdBaseConfidence           float32
	CrowdPerPersonConfidence      float32
	CrowdMaxConfidence            float32

	WeaponPresenceConfidence   float32
	WeaponPersistentMinFrames  int
	WeaponPersistentConfidence float32
	ValuableSpanRatio          float32
	ValuableChangeConfidence   float32

	// Probability floors for action-derived events. Crime-relevant
	// actions get a much lower floor than ordinary ones.
	CrimeRelevantProbFloor float32
	DefaultProbFloor       float32

	CrossModalConfidence float32
}

type ReportConfig struct {
	WeaponIndicatorConfidence float32
	ViolenceIndicatorScore    float32
	TheftIndicatorProbability float32
	SuspicionIndicatorScore   float32

	CriticalSeverity float32
	HighSeverity     float32
	MediumSeverity   float32
}

func DefaultConfig() *Config {
	return &Config{
		Weapon: WeaponConfig{
			ProximityReportDistance:   200,
			ProximityCriticalDistance: 300,
			ProximityModerateDistance: 500,
			HighThreatFrameCount:      2,
		},
		Violence: ViolenceConfig{
			ScoreMeanWeight:        0.5,
			ScoreCountWeight:       0.3,
			ScoreCountSaturation:   0.2,
			ScoreMultiPersonWeight: 0.2,
			ExtremeScore:           0.6,
			HighScore:              0.35,
			ModerateScore:          0.15,
		},
		Theft: TheftConfig{
			RarePresenceRatio: 0.3,
			MinSightings:      2,
			SpanRatio:         0.5,
			BriefSpanRatio:    0.2,
			BriefSuspicion:    0.8,
			ExtendedSuspicion: 0.6,
			CombinedBoost:     1.2,
			DisappearanceDamp: 0.8,
			ActionDamp:        0.7,
			HighProbability:   0.7,
		},
		Suspicion: SuspicionConfig{
			LoiterFrameRatio:      0.8,
			LoiterMaxConfidence:   0.7,
			LoiterConfidenceScale: 0.8,
			GroupMinPersons:       3,
			GroupFrameRatio:       0.5,
			GroupConfidence:       0.65,
			PatternScoreStep:      0.25,
		},
		Events: EventConfig{
			WeaponObjectConfidenceArmed: 0.9,
			WeaponObjectConfidenceAlone: 0.7,
			ValuablesPersonsMinPersons:  2,
			ValuablesPersonsConfidence:  0.6,
			CrowdMinPersons:             3,
			CrowdMediumPersons:          7,
			CrowdBaseConfidence:         0.4,
			CrowdPerPersonConfidence:    0.05,
			CrowdMaxConfidence:          0.8,
			WeaponPresenceConfidence:    0.75,
			WeaponPersistentMinFrames:   2,
			WeaponPersistentConfidence:  0.90,
			ValuableSpanRatio:           0.3,
			ValuableChangeConfidence:    0.65,
			CrimeRelevantProbFloor:      0.001,
			DefaultProbFloor:            0.08,
			CrossModalConfidence:        0.9,
		},
		Report: ReportConfig{
			WeaponIndicatorConfidence: 0.9,
			ViolenceIndicatorScore:    0.5,
			TheftIndicatorProbability: 0.4,
			SuspicionIndicatorScore:   0.5,
			CriticalSeverity:          0.8,
			HighSeverity:              0.6,
			MediumSeverity:            0.4,
		},
	}
}
