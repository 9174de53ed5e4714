package face

// Synthetic face construction shared across the package tests. Faces are
// built inside a 200x200 box with eye centers at (70,80) and (130,80),
// the nose tip on the vertical midline, and a mouth centered at (100,160).

type faceOpts struct {
	ear         float64 // eye aspect ratio for both eyes
	browGap     float64 // vertical gap from eye line to brows (px)
	mouthHeight float64 // outer-lip height (px)
	noseShiftX  float64 // horizontal nose-tip offset (yaw)
	offsetX     float64 // whole-face translation (head movement)
	offsetY     float64
}

func neutralOpts() faceOpts {
	return faceOpts{ear: 0.4, browGap: 40, mouthHeight: 14}
}

func buildFace(o faceOpts) (LandmarkSet, BoundingBox) {
	pts := make(LandmarkSet, NumLandmarks)

	// Jaw 0-16: evenly spread chin line.
	for i := 0; i <= JawEnd; i++ {
		pts[i] = Point{X: 20 + float64(i)*10, Y: 170}
	}

	// Brows 17-26 sit browGap above the eye line.
	browY := 80 - o.browGap
	for i := 0; i < 5; i++ {
		pts[LeftBrowStart+i] = Point{X: 50 + float64(i)*10, Y: browY}
		pts[RightBrowStart+i] = Point{X: 110 + float64(i)*10, Y: browY}
	}

	// Nose bridge 27-30 down the midline; tip shifted for yaw tests.
	pts[27] = Point{X: 100, Y: 90}
	pts[28] = Point{X: 100, Y: 100}
	pts[29] = Point{X: 100, Y: 110}
	pts[NoseTip] = Point{X: 100 + o.noseShiftX, Y: 130}

	// Nose base 31-35.
	for i := 0; i < 5; i++ {
		pts[NoseBaseStart+i] = Point{X: 90 + float64(i)*5, Y: 135}
	}

	// Eyes: six points per eye with a 30px horizontal span, so the
	// vertical spread d = ear * 30 yields exactly the requested EAR.
	placeEye(pts, LeftEyeStart, 70, o.ear)
	placeEye(pts, RightEyeStart, 130, o.ear)

	// Outer mouth 48-59.
	h := o.mouthHeight / 2
	pts[MouthLeft] = Point{X: 80, Y: 160}
	pts[49] = Point{X: 87, Y: 160 - h}
	pts[50] = Point{X: 94, Y: 160 - h}
	pts[MouthTop] = Point{X: 100, Y: 160 - h}
	pts[52] = Point{X: 106, Y: 160 - h}
	pts[53] = Point{X: 113, Y: 160 - h}
	pts[MouthRight] = Point{X: 120, Y: 160}
	pts[55] = Point{X: 113, Y: 160 + h}
	pts[56] = Point{X: 106, Y: 160 + h}
	pts[MouthBottom] = Point{X: 100, Y: 160 + h}
	pts[58] = Point{X: 94, Y: 160 + h}
	pts[59] = Point{X: 87, Y: 160 + h}

	// Inner mouth 60-67.
	for i := 60; i <= InnerMouthEnd; i++ {
		pts[i] = Point{X: 90 + float64(i-60)*3, Y: 160}
	}

	for i := range pts {
		pts[i].X += o.offsetX
		pts[i].Y += o.offsetY
	}

	box := BoundingBox{X: o.offsetX, Y: o.offsetY, Width: 200, Height: 200}
	return pts, box
}

func placeEye(pts LandmarkSet, start int, centerX, ear float64) {
	d := ear * 30
	pts[start+0] = Point{X: centerX - 15, Y: 80}
	pts[start+1] = Point{X: centerX - 5, Y: 80 - d/2}
	pts[start+2] = Point{X: centerX + 5, Y: 80 - d/2}
	pts[start+3] = Point{X: centerX + 15, Y: 80}
	pts[start+4] = Point{X: centerX + 5, Y: 80 + d/2}
	pts[start+5] = Point{X: centerX - 5, Y: 80 + d/2}
}

func neutralFace() (LandmarkSet, BoundingBox) {
	return buildFace(neutralOpts())
}
