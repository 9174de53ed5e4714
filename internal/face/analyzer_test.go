package face

import (
	"testing"
	"time"

	"github.com/calmview/calmview/internal/clock"
)

func testClock() *clock.Mock {
	return clock.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestAnalyze_CalmScenario(t *testing.T) {
	// Wide-open eyes, relaxed brows, closed-but-relaxed mouth, no head
	// movement, zero blinks in the window. Only the suppressed blink
	// channel contributes.
	a := NewAnalyzer(testClock())
	landmarks, box := neutralFace()

	var res AnalysisResult
	for i := 0; i < 5; i++ {
		res = a.Analyze(landmarks, box)
	}

	if res.Level != LevelCalm {
		t.Errorf("level = %v, want CALM", res.Level)
	}
	if res.StressScore >= 20 {
		t.Errorf("stress score = %d, want < 20", res.StressScore)
	}
	if res.StressScore != 10 {
		t.Errorf("stress score = %d, want 10 (blink channel only)", res.StressScore)
	}
}

func TestAnalyze_HighStressScenario(t *testing.T) {
	// Near-closed eyes sustained across frames, furrowed brows, pressed
	// lips. Eyes stay latched closed, so the blink channel reads fully
	// suppressed as well.
	a := NewAnalyzer(testClock())
	landmarks, box := buildFace(faceOpts{ear: 0.05, browGap: 5, mouthHeight: 2})

	var res AnalysisResult
	for i := 0; i < 10; i++ {
		res = a.Analyze(landmarks, box)
	}

	if res.StressScore < 60 {
		t.Errorf("stress score = %d, want >= 60", res.StressScore)
	}
	if res.Level != LevelHigh && res.Level != LevelExtreme {
		t.Errorf("level = %v, want HIGH or EXTREME", res.Level)
	}
	if brow := res.Channels[ChannelBrowTension].Normalized; brow < 0.8 {
		t.Errorf("brow tension = %v, want >= 0.8", brow)
	}
}

func TestAnalyze_EARMonotonicity(t *testing.T) {
	// Closing the eyes, all else fixed, must never lower the score.
	ears := []float64{0.45, 0.4, 0.3, 0.25, 0.2, 0.15, 0.1, 0.05}
	prev := -1
	for _, ear := range ears {
		a := NewAnalyzer(testClock())
		landmarks, box := buildFace(faceOpts{ear: ear, browGap: 40, mouthHeight: 14})
		res := a.Analyze(landmarks, box)
		if res.StressScore < prev {
			t.Errorf("score decreased to %d at ear=%v (previous %d)", res.StressScore, ear, prev)
		}
		prev = res.StressScore
	}
}

func TestAnalyze_AllOutputsBounded(t *testing.T) {
	faces := []faceOpts{
		neutralOpts(),
		{ear: 0.05, browGap: 0, mouthHeight: 0},
		{ear: 1.5, browGap: 200, mouthHeight: 100},
		{ear: 0.4, browGap: 40, mouthHeight: 14, noseShiftX: 500, offsetX: 300},
	}
	for _, o := range faces {
		a := NewAnalyzer(testClock())
		landmarks, box := buildFace(o)
		res := a.Analyze(landmarks, box)

		if res.StressScore < 0 || res.StressScore > 100 {
			t.Errorf("score %d out of [0,100] for %+v", res.StressScore, o)
		}
		for name, ch := range res.Channels {
			if ch.Normalized < 0 || ch.Normalized > 1 {
				t.Errorf("channel %s normalized = %v out of [0,1] for %+v", name, ch.Normalized, o)
			}
			if ch.Raw != ch.Raw {
				t.Errorf("channel %s raw is NaN for %+v", name, o)
			}
		}
	}
}

func TestAnalyze_DegenerateGeometry(t *testing.T) {
	// Every landmark coincident and a zero-size box: all denominators
	// degenerate at once. Analyze must still return finite, clamped
	// output without panicking.
	a := NewAnalyzer(testClock())
	landmarks := make(LandmarkSet, NumLandmarks)
	res := a.Analyze(landmarks, BoundingBox{})

	if res.StressScore < 0 || res.StressScore > 100 {
		t.Errorf("degenerate score = %d, want within [0,100]", res.StressScore)
	}
	for name, ch := range res.Channels {
		if ch.Normalized < 0 || ch.Normalized > 1 {
			t.Errorf("degenerate channel %s normalized = %v", name, ch.Normalized)
		}
		if ch.Raw != ch.Raw {
			t.Errorf("degenerate channel %s raw is NaN", name)
		}
	}
	if res.HeadPose.Roll != res.HeadPose.Roll {
		t.Error("degenerate roll is NaN")
	}
}

func TestAnalyze_WrongLandmarkCountPanics(t *testing.T) {
	a := NewAnalyzer(testClock())
	defer func() {
		if recover() == nil {
			t.Error("expected panic for short landmark set")
		}
	}()
	a.Analyze(make(LandmarkSet, 10), BoundingBox{Width: 200, Height: 200})
}

func TestAnalyze_BlinkWindowPruning(t *testing.T) {
	clk := testClock()
	a := NewAnalyzer(clk)
	closed, box := buildFace(faceOpts{ear: 0.05, browGap: 40, mouthHeight: 14})
	open, _ := neutralFace()

	// Three blinks inside the first two seconds.
	for i := 0; i < 3; i++ {
		a.Analyze(closed, box)
		clk.Advance(100 * time.Millisecond)
		res := a.Analyze(open, box)
		clk.Advance(500 * time.Millisecond)
		if got := res.BlinksPerMinute(); got != i+1 {
			t.Fatalf("bpm after blink %d = %d, want %d", i+1, got, i+1)
		}
	}

	// 61 seconds later every event has aged out of the rolling window.
	clk.Advance(61 * time.Second)
	res := a.Analyze(open, box)
	if got := res.BlinksPerMinute(); got != 0 {
		t.Errorf("bpm after window elapsed = %d, want 0", got)
	}
}

func TestAnalyze_130FrameSession(t *testing.T) {
	a := NewAnalyzer(testClock())
	landmarks, box := neutralFace()

	var res AnalysisResult
	for i := 0; i < 130; i++ {
		res = a.Analyze(landmarks, box)
	}

	if len(res.RecentHistory) != RecentHistoryCapacity {
		t.Errorf("recent history length = %d, want %d", len(res.RecentHistory), RecentHistoryCapacity)
	}
	stats, ok := a.SessionStats()
	if !ok {
		t.Fatal("expected session stats after 130 frames")
	}
	if stats.Total != 130 {
		t.Errorf("stats total = %d, want 130", stats.Total)
	}

	sum := 0
	for _, c := range a.Distribution() {
		sum += c
	}
	if sum != 130 {
		t.Errorf("distribution sum = %d, want 130", sum)
	}
}

func TestAnalyze_HeadMovementSmoothing(t *testing.T) {
	a := NewAnalyzer(testClock())
	box := BoundingBox{Width: 200, Height: 200}

	// Jump the whole face 20px per frame: displacement 0.1 of face size,
	// well above the 0.05 saturation point once the window fills.
	var res AnalysisResult
	for i := 0; i < moveWindow+1; i++ {
		landmarks, _ := buildFace(faceOpts{ear: 0.4, browGap: 40, mouthHeight: 14, offsetX: float64(i) * 20})
		res = a.Analyze(landmarks, box)
	}
	if got := res.Channels[ChannelHeadMovement].Normalized; got != 1 {
		t.Errorf("sustained movement norm = %v, want 1", got)
	}

	// Holding still drains the window back toward zero.
	still, _ := buildFace(faceOpts{ear: 0.4, browGap: 40, mouthHeight: 14, offsetX: float64(moveWindow) * 20})
	for i := 0; i < moveWindow; i++ {
		res = a.Analyze(still, box)
	}
	if got := res.Channels[ChannelHeadMovement].Normalized; got != 0 {
		t.Errorf("settled movement norm = %v, want 0", got)
	}
}

func TestReset(t *testing.T) {
	clk := testClock()
	a := NewAnalyzer(clk)
	closed, box := buildFace(faceOpts{ear: 0.05, browGap: 40, mouthHeight: 14})
	open, _ := neutralFace()

	a.Analyze(closed, box)
	clk.Advance(100 * time.Millisecond)
	a.Analyze(open, box)

	a.Reset()

	if _, ok := a.SessionStats(); ok {
		t.Error("session stats should be empty after reset")
	}
	if got := a.RecentHistory(); len(got) != 0 {
		t.Errorf("recent history after reset = %v, want empty", got)
	}
	if a.FrameCount() != 0 {
		t.Errorf("frame count after reset = %d, want 0", a.FrameCount())
	}

	// Blink latch and events must not leak across sessions: the first
	// post-reset open frame records no blink.
	res := a.Analyze(open, box)
	if got := res.BlinksPerMinute(); got != 0 {
		t.Errorf("bpm after reset = %d, want 0", got)
	}
}

func TestAnalysisResult_ExportFields(t *testing.T) {
	a := NewAnalyzer(testClock())
	landmarks, box := neutralFace()
	res := a.Analyze(landmarks, box)

	if got := res.FocusPercent(); got != 100 {
		t.Errorf("focus percent = %d, want 100", got)
	}
	if got := res.BlinksPerMinute(); got != 0 {
		t.Errorf("blinks per minute = %d, want 0", got)
	}
}
