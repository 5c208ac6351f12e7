package pose

// DefaultSmoothingAlpha is the blend weight given to the newest frame.
const DefaultSmoothingAlpha = 0.3

// Smoother applies an exponential moving average to a keypoint stream:
//
//	smoothed[i] = prev[i]*(1-α) + raw[i]*α
//
// independently on x, y and confidence. The first sighting of an index passes
// through unchanged. A nil input entry keeps its previous smoothed value, so a
// one-tick detection drop never snaps a limb to the origin.
type Smoother struct {
	alpha float64
	prev  []Keypoint
	seen  []bool
}

// NewSmoother returns a Smoother; alpha is clamped to [0, 1].
func NewSmoother(alpha float64) *Smoother {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return &Smoother{alpha: alpha}
}

// Alpha returns the blend factor in use.
func (s *Smoother) Alpha() float64 { return s.alpha }

// Reset discards all smoothing history.
func (s *Smoother) Reset() {
	s.prev = nil
	s.seen = nil
}

// Smooth blends raw into the running state and returns the smoothed frame.
// The result has len(raw) entries; an index that has never been seen and is
// missing in raw stays nil. The returned keypoints are copies.
func (s *Smoother) Smooth(raw Frame) Frame {
	s.grow(len(raw))

	out := make(Frame, len(raw))
	for i, kp := range raw {
		if kp == nil {
			if s.seen[i] {
				held := s.prev[i]
				out[i] = &held
			}
			continue
		}

		if !s.seen[i] {
			s.prev[i] = *kp
			s.seen[i] = true
		} else {
			p := &s.prev[i]
			p.X = p.X*(1-s.alpha) + kp.X*s.alpha
			p.Y = p.Y*(1-s.alpha) + kp.Y*s.alpha
			p.Confidence = p.Confidence*(1-s.alpha) + kp.Confidence*s.alpha
			if kp.Name != "" {
				p.Name = kp.Name
			}
		}

		smoothed := s.prev[i]
		out[i] = &smoothed
	}
	return out
}

func (s *Smoother) grow(n int) {
	if n <= len(s.prev) {
		return
	}
	prev := make([]Keypoint, n)
	seen := make([]bool, n)
	copy(prev, s.prev)
	copy(seen, s.seen)
	s.prev = prev
	s.seen = seen
}
