package renderer

// GridLines returns ground-plane grid lines covering the arena floor with
// the given cell size.
func GridLines(halfWidth, halfLength, cell float32) []float32 {
	if cell <= 0 || halfWidth <= 0 || halfLength <= 0 {
		return nil
	}
	var out []float32
	for x := -halfWidth; x <= halfWidth+1e-3; x += cell {
		out = append(out, x, 0, -halfLength, x, 0, halfLength)
	}
	for z := -halfLength; z <= halfLength+1e-3; z += cell {
		out = append(out, -halfWidth, 0, z, halfWidth, 0, z)
	}
	return out
}

// WallLines returns the outline of the four arena walls as line segments.
func WallLines(halfWidth, halfLength, height float32) []float32 {
	w, l, h := halfWidth, halfLength, height
	corners := [4][2]float32{{-w, -l}, {w, -l}, {w, l}, {-w, l}}

	out := make([]float32, 0, 12*6)
	for i, c := range corners {
		n := corners[(i+1)%4]
		out = append(out,
			c[0], 0, c[1], n[0], 0, n[1],
			c[0], h, c[1], n[0], h, n[1],
			c[0], 0, c[1], c[0], h, c[1],
		)
	}
	return out
}
