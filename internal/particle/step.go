package particle

// Step moves every particle by its velocity and folds any excursion past
// the viewport edge (inset by pointSize) back inside, flipping the velocity
// on that axis. Axes are handled independently. It returns the number of
// axis reflections.
func Step(s *Set, pointSize, width, height float32) int {
	bounces := 0
	for i := 0; i < len(s.Pos); i += 2 {
		if reflect(&s.Pos[i], &s.Vel[i], pointSize, width) {
			bounces++
		}
		if reflect(&s.Pos[i+1], &s.Vel[i+1], pointSize, height) {
			bounces++
		}
	}
	return bounces
}

func reflect(p, v *float32, size, extent float32) bool {
	*p += *v
	switch {
	case *p-size < 0:
		*p = size - (*p - size)
		*v = abs(*v)
		return true
	case *p+size > extent:
		*p = extent - (*p + size - extent) - size
		*v = -abs(*v)
		return true
	}
	return false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
