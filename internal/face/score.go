package face

import "math"

// StressLevel is one of the five ordered severity bands derived from the
// composite score. Label and Color are presentation metadata consumed
// verbatim by the rendering collaborator.
type StressLevel struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	LevelCalm     = StressLevel{Label: "CALM", Color: "#4ade80"}
	LevelMild     = StressLevel{Label: "MILD", Color: "#a3e635"}
	LevelModerate = StressLevel{Label: "MODERATE", Color: "#facc15"}
	LevelHigh     = StressLevel{Label: "HIGH", Color: "#fb923c"}
	LevelExtreme  = StressLevel{Label: "EXTREME", Color: "#f87171"}
)

// Band thresholds, closed at the bottom: a score of exactly 20 is MILD.
const (
	calmCeiling     = 20
	mildCeiling     = 40
	moderateCeiling = 60
	highCeiling     = 80
)

// levelFor classifies a composite score into its severity band.
func levelFor(score int) StressLevel {
	switch {
	case score < calmCeiling:
		return LevelCalm
	case score < mildCeiling:
		return LevelMild
	case score < moderateCeiling:
		return LevelModerate
	case score < highCeiling:
		return LevelHigh
	}
	return LevelExtreme
}

// Composite weights. They sum to 100, so the weighted sum is bounded when
// every channel honors its [0,1] clamp; the outer clamp stays as
// defense-in-depth against extreme geometry.
const (
	weightEyeOpenness  = 20
	weightBrowTension  = 25
	weightMouthTension = 18
	weightAsymmetry    = 12
	weightHeadMovement = 10
	weightBlinkRate    = 10
	weightFocus        = 5
)

// compositeScore combines seven normalized channels into the 0-100 stress
// index. Eye openness and focus contribute inverted: open, focused faces
// pull the score down.
func compositeScore(c map[string]SignalReading) int {
	sum := (1-c[ChannelEyeOpenness].Normalized)*weightEyeOpenness +
		c[ChannelBrowTension].Normalized*weightBrowTension +
		c[ChannelMouthTension].Normalized*weightMouthTension +
		c[ChannelAsymmetry].Normalized*weightAsymmetry +
		c[ChannelHeadMovement].Normalized*weightHeadMovement +
		c[ChannelBlinkRate].Normalized*weightBlinkRate +
		(1-c[ChannelFocus].Normalized)*weightFocus
	return int(math.Round(clamp(sum, 0, 100)))
}
