package face

import "math"

// Channel keys used in AnalysisResult.Channels.
const (
	ChannelEyeOpenness  = "eye_openness"
	ChannelBrowTension  = "brow_tension"
	ChannelMouthTension = "mouth_tension"
	ChannelAsymmetry    = "asymmetry"
	ChannelHeadMovement = "head_movement"
	ChannelBlinkRate    = "blink_rate"
	ChannelFocus        = "focus"
	ChannelHeadPose     = "head_pose"
)

// Channel tuning constants. Raw measurements are rescaled against these
// empirical reference values before clamping to [0,1].
const (
	earNormFloor = 0.1  // EAR at which eyes read as fully closed
	earNormSpan  = 0.3  // EAR span from closed to wide open
	browGapScale = 0.18 // relaxed brow-to-eye gap as fraction of face size
	mouthRatio   = 0.3  // relaxed mouth height/width ratio
	asymScale    = 0.05 // asymmetry saturation as fraction of face size
	moveScale    = 0.05 // movement saturation as fraction of face size
	moveWindow   = 12   // frames in the head-movement moving average

	blinkEARThreshold = 0.21  // EAR below which the eye latches closed
	blinkWindowMillis = 60000 // rolling blink-count window
	blinkLowBPM       = 8     // below this, low blink rate signals strain
	blinkHighBPM      = 25    // above this, rapid blinking signals strain
	blinkHighSpan     = 20    // bpm span from onset to full saturation

	pitchScale         = 35   // degrees per unit vertical nose offset
	yawScale           = 60   // degrees per unit horizontal nose offset
	poseNormSpan       = 60   // |pitch|+|yaw| degrees at full saturation
	neutralPitchOffset = 0.25 // nose sits ~25% of face height below the eye line
)

// SignalReading is one channel's per-frame output: a raw channel-native
// value, a normalized stress contribution in [0,1], and a display label.
type SignalReading struct {
	Raw        float64 `json:"raw"`
	Normalized float64 `json:"normalized"`
	Label      string  `json:"label"`
}

// PoseAngles is the estimated head orientation in degrees.
type PoseAngles struct {
	Pitch int     `json:"pitch"`
	Yaw   int     `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// grade maps a normalized value onto a three-step display label.
func grade(norm float64, low, mid, high string) string {
	switch {
	case norm < 0.34:
		return low
	case norm < 0.67:
		return mid
	}
	return high
}

// meanEAR returns the eye-aspect-ratio averaged over both eyes. It feeds
// both the eye-openness channel and the blink latch.
func meanEAR(l LandmarkSet) float64 {
	return (eyeAspectRatio(l.leftEye()) + eyeAspectRatio(l.rightEye())) / 2
}

// eyeOpennessSignal measures mean EAR across both eyes. Normalized 1 means
// wide open; the composite scorer inverts it.
func eyeOpennessSignal(ear float64) SignalReading {
	norm := clamp01((ear - earNormFloor) / earNormSpan)
	return SignalReading{
		Raw:        clamp(ear, 0, 1),
		Normalized: norm,
		Label:      grade(norm, "Closed", "Narrowed", "Open"),
	}
}

// browTensionSignal measures the mean vertical brow-to-eye gap. A compressed
// gap (furrowed brow) drives the normalized value toward 1.
func browTensionSignal(l LandmarkSet, faceSize float64) SignalReading {
	leftGap := math.Abs(centroid(l.leftEye()).Y - centroid(l[LeftBrowStart:LeftBrowEnd+1]).Y)
	rightGap := math.Abs(centroid(l.rightEye()).Y - centroid(l[RightBrowStart:RightBrowEnd+1]).Y)
	gap := (leftGap + rightGap) / 2
	norm := clamp01(1 - gap/(browGapScale*faceSize+epsilon))
	return SignalReading{
		Raw:        gap,
		Normalized: norm,
		Label:      grade(norm, "Relaxed", "Drawn", "Furrowed"),
	}
}

// mouthTensionSignal measures the mouth height/width ratio. Pressed lips
// (low ratio) drive the normalized value toward 1.
func mouthTensionSignal(l LandmarkSet) SignalReading {
	width := dist(l[MouthLeft], l[MouthRight])
	height := dist(l[MouthTop], l[MouthBottom])
	ratio := height / (width + epsilon)
	norm := clamp01(1 - ratio/mouthRatio)
	return SignalReading{
		Raw:        ratio,
		Normalized: norm,
		Label:      grade(norm, "Relaxed", "Set", "Pressed"),
	}
}

// asymmetrySignal measures how far the eye and mouth midlines drift from
// the nose line, averaged, as a fraction of face size.
func asymmetrySignal(l LandmarkSet, faceSize float64) SignalReading {
	noseX := l[NoseTip].X
	eyeMid := midpoint(centroid(l.leftEye()), centroid(l.rightEye()))
	mouthMid := midpoint(l[MouthLeft], l[MouthRight])
	asym := (math.Abs(eyeMid.X-noseX) + math.Abs(mouthMid.X-noseX)) / 2
	norm := clamp01(asym / (asymScale*faceSize + epsilon))
	return SignalReading{
		Raw:        asym,
		Normalized: norm,
		Label:      grade(norm, "Balanced", "Skewed", "Strained"),
	}
}

// motionWindow smooths per-frame nose displacement over a fixed window.
// It is one of the two stateful channels; state lives for one session.
type motionWindow struct {
	samples [moveWindow]float64
	head    int
	size    int
	hasNose bool
	nose    Point
}

// observe records one frame's nose position and returns the windowed
// average displacement as a fraction of face size. The first frame of a
// session contributes zero displacement.
func (m *motionWindow) observe(nose Point, faceSize float64) float64 {
	var disp float64
	if m.hasNose {
		disp = dist(nose, m.nose) / (faceSize + epsilon)
	}
	m.nose = nose
	m.hasNose = true

	m.samples[m.head] = disp
	m.head = (m.head + 1) % moveWindow
	if m.size < moveWindow {
		m.size++
	}

	var sum float64
	for i := 0; i < m.size; i++ {
		sum += m.samples[i]
	}
	return sum / float64(m.size)
}

func (m *motionWindow) reset() {
	*m = motionWindow{}
}

// headMovementSignal converts the windowed displacement into a reading.
func (m *motionWindow) headMovementSignal(nose Point, faceSize float64) SignalReading {
	avg := m.observe(nose, faceSize)
	norm := clamp01(avg / moveScale)
	return SignalReading{
		Raw:        avg,
		Normalized: norm,
		Label:      grade(norm, "Still", "Shifting", "Restless"),
	}
}

// blinkTracker latches eye state across frames and keeps blink event
// timestamps inside a rolling 60-second window. The window count is
// reported directly as blinks per minute, which under-counts during the
// first minute of a session; downstream consumers depend on that shape,
// so no correction is applied.
type blinkTracker struct {
	closed bool
	events []int64
}

// observe runs the OPEN→CLOSED→OPEN latch for one frame and returns the
// current blinks-per-minute count. nowMs is wall-clock milliseconds from
// the injected session clock.
func (b *blinkTracker) observe(ear float64, nowMs int64) int {
	if !b.closed && ear < blinkEARThreshold {
		b.closed = true
	} else if b.closed && ear >= blinkEARThreshold {
		b.closed = false
		b.events = append(b.events, nowMs)
	}

	cutoff := nowMs - blinkWindowMillis
	keep := b.events[:0]
	for _, t := range b.events {
		if t > cutoff {
			keep = append(keep, t)
		}
	}
	b.events = keep
	return len(b.events)
}

func (b *blinkTracker) reset() {
	b.closed = false
	b.events = nil
}

// blinkRateSignal scores the blink rate. The comfortable band [8,25] bpm
// scores zero; suppressed blinking ramps below it, rapid blinking above.
func (b *blinkTracker) blinkRateSignal(ear float64, nowMs int64) SignalReading {
	bpm := b.observe(ear, nowMs)
	var norm float64
	switch {
	case bpm < blinkLowBPM:
		norm = float64(blinkLowBPM-bpm) / blinkLowBPM
	case bpm > blinkHighBPM:
		norm = clamp01(float64(bpm-blinkHighBPM) / blinkHighSpan)
	}
	label := "Steady"
	if norm > 0 {
		if bpm < blinkLowBPM {
			label = "Suppressed"
		} else {
			label = "Rapid"
		}
	}
	return SignalReading{
		Raw:        float64(bpm),
		Normalized: clamp01(norm),
		Label:      label,
	}
}

// focusSignal derives attention from the current frame's eye-openness,
// brow-tension, and head-movement readings. Normalized 1 means fully
// focused; the composite scorer inverts it.
func focusSignal(eye, brow, move SignalReading) SignalReading {
	norm := clamp01(0.5*eye.Normalized + 0.3*(1-brow.Normalized) + 0.2*(1-move.Normalized))
	return SignalReading{
		Raw:        norm,
		Normalized: norm,
		Label:      grade(norm, "Distracted", "Wavering", "Focused"),
	}
}

// headPoseSignal estimates pitch/yaw/roll from the eye line and nose
// offset. Pitch and yaw are empirical small-angle approximations scaled
// to integer degrees; roll is the eye-line tilt.
func headPoseSignal(l LandmarkSet, box BoundingBox) (SignalReading, PoseAngles) {
	leftEye := centroid(l.leftEye())
	rightEye := centroid(l.rightEye())
	eyeMid := midpoint(leftEye, rightEye)
	nose := l[NoseTip]

	dx := rightEye.X - leftEye.X
	dy := rightEye.Y - leftEye.Y
	roll := math.Atan2(dy, dx) * 180 / math.Pi

	interEye := dist(leftEye, rightEye)
	yaw := int(math.Round(clamp((nose.X-eyeMid.X)/(interEye+epsilon), -1, 1) * yawScale))

	drop := (nose.Y - eyeMid.Y) / (box.FaceHeight() + epsilon)
	pitch := int(math.Round(clamp(drop-neutralPitchOffset, -1, 1) * pitchScale))

	if math.IsNaN(roll) {
		roll = 0
	}

	norm := clamp01(float64(abs(pitch)+abs(yaw)) / poseNormSpan)
	reading := SignalReading{
		Raw:        float64(abs(pitch) + abs(yaw)),
		Normalized: norm,
		Label:      grade(norm, "Centered", "Tilted", "Turned"),
	}
	return reading, PoseAngles{Pitch: pitch, Yaw: yaw, Roll: roll}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
