package face

import (
	"math"

	"github.com/calmview/calmview/internal/clock"
)

// AnalysisResult is the full per-frame output returned to collaborators.
type AnalysisResult struct {
	StressScore   int                      `json:"stress_score"`
	Level         StressLevel              `json:"level"`
	Channels      map[string]SignalReading `json:"channels"`
	HeadPose      PoseAngles               `json:"head_pose"`
	RecentHistory []int                    `json:"recent_history"`
}

// FocusPercent returns the focus channel as a 0-100 integer, the form the
// export collaborator records per frame.
func (r AnalysisResult) FocusPercent() int {
	return int(math.Round(r.Channels[ChannelFocus].Normalized * 100))
}

// BlinksPerMinute returns the blink-rate channel's raw count.
func (r AnalysisResult) BlinksPerMinute() int {
	return int(r.Channels[ChannelBlinkRate].Raw)
}

// Analyzer owns all cross-frame state for one session: the recent-score
// buffer, the session score list, blink timing, and head-movement
// smoothing. It is a single-writer structure: Analyze and Reset must never
// run concurrently, and the caller provides that discipline.
type Analyzer struct {
	clk clock.Clock

	history  *scoreHistory
	motion   motionWindow
	blink    blinkTracker
	lastPose PoseAngles
	frames   int
}

// NewAnalyzer creates an empty analyzer driven by the given clock. A nil
// clock falls back to real wall-clock time.
func NewAnalyzer(clk clock.Clock) *Analyzer {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Analyzer{
		clk:     clk,
		history: newScoreHistory(),
	}
}

// Analyze processes one frame: it extracts the eight signal channels,
// combines seven of them into the composite stress score, updates session
// state, and returns the frame result. It never blocks, never returns a
// non-finite value, and never fails for a well-formed landmark set; a set
// without exactly 68 points panics.
func (a *Analyzer) Analyze(landmarks LandmarkSet, box BoundingBox) AnalysisResult {
	landmarks.mustBeComplete()
	a.frames++

	faceSize := box.FaceSize()
	ear := meanEAR(landmarks)

	eye := eyeOpennessSignal(ear)
	brow := browTensionSignal(landmarks, faceSize)
	mouth := mouthTensionSignal(landmarks)
	asym := asymmetrySignal(landmarks, faceSize)
	move := a.motion.headMovementSignal(landmarks[NoseTip], faceSize)
	blink := a.blink.blinkRateSignal(ear, a.clk.NowMillis())
	focus := focusSignal(eye, brow, move)
	pose, angles := headPoseSignal(landmarks, box)
	a.lastPose = angles

	channels := map[string]SignalReading{
		ChannelEyeOpenness:  eye,
		ChannelBrowTension:  brow,
		ChannelMouthTension: mouth,
		ChannelAsymmetry:    asym,
		ChannelHeadMovement: move,
		ChannelBlinkRate:    blink,
		ChannelFocus:        focus,
		ChannelHeadPose:     pose,
	}

	score := compositeScore(channels)
	a.history.push(score)

	return AnalysisResult{
		StressScore:   score,
		Level:         levelFor(score),
		Channels:      channels,
		HeadPose:      angles,
		RecentHistory: a.history.recent.ordered(),
	}
}

// Reset clears all buffers and counters back to their initial empty
// state. It must be called at both session start and session end, and
// never concurrently with Analyze.
func (a *Analyzer) Reset() {
	a.history.reset()
	a.motion.reset()
	a.blink.reset()
	a.lastPose = PoseAngles{}
	a.frames = 0
}

// SessionStats aggregates the current session's scores. The second return
// is false when no frames have been analyzed since the last reset.
func (a *Analyzer) SessionStats() (SessionStats, bool) {
	return computeSessionStats(a.history.session)
}

// Distribution returns the 10-bucket histogram of session scores.
func (a *Analyzer) Distribution() [DistributionBuckets]int {
	return distribution(a.history.session)
}

// RecentHistory returns the bounded recent-score buffer, oldest first.
func (a *Analyzer) RecentHistory() []int {
	return a.history.recent.ordered()
}

// FrameCount returns the number of frames analyzed this session.
func (a *Analyzer) FrameCount() int { return a.frames }

// LastPose returns the most recent head pose, unblended.
func (a *Analyzer) LastPose() PoseAngles { return a.lastPose }
