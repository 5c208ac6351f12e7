package pose

import "gonum.org/v1/gonum/stat"

// Side selection defaults.
const (
	DefaultSideMinScore = 0.25
	DefaultSideMargin   = 0.15
)

// scoreEpsilon absorbs float error when a score sits exactly on a threshold.
const scoreEpsilon = 1e-9

// SideScores holds the mean landmark confidence of each side.
type SideScores struct {
	Left  float64
	Right float64
}

// ScoreSides averages the confidence of every side landmark. Missing
// keypoints count as zero confidence.
func ScoreSides(f Frame) SideScores {
	left := make([]float64, 0, len(Landmarks))
	right := make([]float64, 0, len(Landmarks))
	for _, l := range Landmarks {
		left = append(left, confidenceOf(f.Landmark(l, SideLeft)))
		right = append(right, confidenceOf(f.Landmark(l, SideRight)))
	}
	return SideScores{
		Left:  stat.Mean(left, nil),
		Right: stat.Mean(right, nil),
	}
}

func confidenceOf(kp *Keypoint) float64 {
	if kp == nil {
		return 0
	}
	return kp.Confidence
}

// SideSelector picks the body side facing the camera with hysteresis. A new
// side is asserted only when its score reaches MinScore and beats the other
// side by at least Margin; otherwise the last asserted side is kept.
type SideSelector struct {
	MinScore float64
	Margin   float64

	current Side
}

// NewSideSelector returns a selector with the given thresholds.
func NewSideSelector(minScore, margin float64) *SideSelector {
	return &SideSelector{MinScore: minScore, Margin: margin}
}

// Current returns the last asserted side, SideUndefined if none yet.
func (s *SideSelector) Current() Side { return s.current }

// Reset forgets the asserted side.
func (s *SideSelector) Reset() { s.current = SideUndefined }

// Update scores f and returns the selected side.
func (s *SideSelector) Update(f Frame) Side {
	return s.Decide(ScoreSides(f))
}

// Decide applies the hysteresis rule to precomputed scores.
func (s *SideSelector) Decide(scores SideScores) Side {
	best, bestScore, otherScore := SideLeft, scores.Left, scores.Right
	if scores.Right > scores.Left {
		best, bestScore, otherScore = SideRight, scores.Right, scores.Left
	}

	if bestScore >= s.MinScore-scoreEpsilon && bestScore-otherScore >= s.Margin-scoreEpsilon {
		s.current = best
	}
	return s.current
}
