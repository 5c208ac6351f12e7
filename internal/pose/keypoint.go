package pose

import "github.com/banshee-data/bikefit/internal/geom"

// Keypoint is a single tracked landmark. Coordinates are normalised [0,1]
// as delivered by the pose source, or pixels after ToPixels.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"score"`
	Name       string  `json:"name,omitempty"`
}

// Point returns the keypoint position.
func (k Keypoint) Point() geom.Point {
	return geom.Pt(k.X, k.Y)
}

// Frame is one tick of keypoints in fixed landmark order. A nil entry is a
// keypoint the source did not report this tick.
type Frame []*Keypoint

// At returns the keypoint at idx, or nil when idx is out of range or missing.
func (f Frame) At(idx int) *Keypoint {
	if idx < 0 || idx >= len(f) {
		return nil
	}
	return f[idx]
}

// Landmark returns the keypoint for l on side s, or nil.
func (f Frame) Landmark(l Landmark, s Side) *Keypoint {
	idx, ok := Index(l, s)
	if !ok {
		return nil
	}
	return f.At(idx)
}

// ToPixels scales a normalised frame into a width×height pixel space. The
// input is not modified; missing entries stay nil.
func ToPixels(f Frame, width, height float64) Frame {
	out := make(Frame, len(f))
	for i, kp := range f {
		if kp == nil {
			continue
		}
		scaled := *kp
		scaled.X *= width
		scaled.Y *= height
		out[i] = &scaled
	}
	return out
}
