package face

import "math"

// epsilon protects divisions against degenerate (coincident) landmarks.
const epsilon = 1e-6

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// midpoint returns the point halfway between a and b.
func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// centroid returns the mean position of the given points.
func centroid(pts []Point) Point {
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	c.X /= n
	c.Y /= n
	return c
}

// eyeAspectRatio computes the EAR over six ordered eye points:
// (‖p2−p6‖ + ‖p3−p5‖) / (2·‖p1−p4‖). Lower values indicate a more
// closed eye. A fully degenerate eye produces a non-finite ratio; callers
// clamp through finite-guarded normalization rather than guarding here.
func eyeAspectRatio(eye []Point) float64 {
	vertical := dist(eye[1], eye[5]) + dist(eye[2], eye[4])
	horizontal := dist(eye[0], eye[3])
	return vertical / (2 * horizontal)
}

// clamp bounds v to [lo, hi]. Non-finite inputs collapse to the nearest
// boundary (NaN maps to lo) so no channel or score ever leaks NaN/Inf.
func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// clamp01 bounds v to the normalized channel range.
func clamp01(v float64) float64 { return clamp(v, 0, 1) }
