// Package face implements the per-frame facial stress analysis engine:
// landmark geometry, the eight signal channels, composite scoring, and
// bounded per-session state (recent history, blink timing, head-movement
// smoothing, session statistics).
//
// The package performs no detection and no I/O. An external detector
// supplies a 68-point landmark set and a face bounding box once per
// analyzed frame; Analyze returns the full result synchronously.
package face

import "fmt"

// Landmark index ranges for the standard 68-point facial layout
// (dlib / face-api ordering).
const (
	JawStart       = 0
	JawEnd         = 16
	LeftBrowStart  = 17
	LeftBrowEnd    = 21
	RightBrowStart = 22
	RightBrowEnd   = 26
	NoseBridgeTop  = 27
	NoseTip        = 30
	NoseBaseStart  = 31
	NoseBaseEnd    = 35
	LeftEyeStart   = 36
	LeftEyeEnd     = 41
	RightEyeStart  = 42
	RightEyeEnd    = 47
	MouthLeft      = 48
	MouthTop       = 51
	MouthRight     = 54
	MouthBottom    = 57
	InnerMouthEnd  = 67

	// NumLandmarks is the required landmark count per frame.
	NumLandmarks = 68
)

// fallbackFaceSize is used as the scale denominator when the detector
// reports a zero or missing bounding-box dimension.
const fallbackFaceSize = 200.0

// Point is a single landmark in video-pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet is the ordered 68-point landmark sequence for one frame.
type LandmarkSet []Point

// mustBeComplete enforces the 68-point contract. A wrong-length set is a
// detector programming error, not a recoverable condition.
func (l LandmarkSet) mustBeComplete() {
	if len(l) != NumLandmarks {
		panic(fmt.Sprintf("face: landmark set has %d points, want %d", len(l), NumLandmarks))
	}
}

// leftEye returns the six ordered left-eye points.
func (l LandmarkSet) leftEye() []Point { return l[LeftEyeStart : LeftEyeEnd+1] }

// rightEye returns the six ordered right-eye points.
func (l LandmarkSet) rightEye() []Point { return l[RightEyeStart : RightEyeEnd+1] }

// BoundingBox is the detector-reported face box in pixel units.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FaceSize returns the scale denominator used to make pixel measurements
// distance-invariant: the box width, or a fixed fallback when the
// detector reports no usable width.
func (b BoundingBox) FaceSize() float64 {
	if b.Width > 0 {
		return b.Width
	}
	return fallbackFaceSize
}

// FaceHeight returns the box height with the same fallback rule.
func (b BoundingBox) FaceHeight() float64 {
	if b.Height > 0 {
		return b.Height
	}
	return fallbackFaceSize
}
