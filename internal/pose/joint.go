package pose

import "github.com/banshee-data/bikefit/internal/geom"

// DefaultConfidenceThreshold is the minimum keypoint confidence for a joint
// angle to be considered valid.
const DefaultConfidenceThreshold = 0.3

// JointAngleSample is one joint angle measured on one tick. Degrees is only
// meaningful when IsValid is true.
type JointAngleSample struct {
	Joint   Joint
	Side    Side
	Degrees float64
	IsValid bool

	// Positions used for the measurement, for overlay rendering.
	A, Vertex, C geom.Point
}

// SampleJoint measures j on side s. The sample is invalid when the side is
// undefined, the joint is unknown, or any contributing keypoint is missing or
// below minConfidence.
func SampleJoint(f Frame, s Side, j Joint, minConfidence float64) JointAngleSample {
	sample := JointAngleSample{Joint: j, Side: s}

	t, ok := TripletFor(j)
	if !ok || s == SideUndefined {
		return sample
	}

	a := f.Landmark(t.A, s)
	v := f.Landmark(t.Vertex, s)
	c := f.Landmark(t.C, s)
	for _, kp := range []*Keypoint{a, v, c} {
		if kp == nil || kp.Confidence < minConfidence {
			return sample
		}
	}

	sample.A, sample.Vertex, sample.C = a.Point(), v.Point(), c.Point()
	sample.Degrees = geom.AngleBetween(sample.A, sample.Vertex, sample.C)
	sample.IsValid = true
	return sample
}

// SampleJoints measures every joint in Joints on side s.
func SampleJoints(f Frame, s Side, minConfidence float64) []JointAngleSample {
	out := make([]JointAngleSample, 0, len(Joints))
	for _, j := range Joints {
		out = append(out, SampleJoint(f, s, j, minConfidence))
	}
	return out
}
