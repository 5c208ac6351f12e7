package pose

import "fmt"

// Side identifies the body side facing the camera.
type Side int

const (
	SideUndefined Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "undefined"
	}
}

// ParseSide is the inverse of Side.String.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "", "undefined":
		return SideUndefined, nil
	}
	return SideUndefined, fmt.Errorf("unknown side %q", s)
}

// Landmark is a side-agnostic anatomical landmark.
type Landmark int

const (
	Shoulder Landmark = iota
	Elbow
	Wrist
	Hip
	Knee
	Ankle
	Heel
	FootTip
)

// Landmarks lists every landmark used for side scoring.
var Landmarks = []Landmark{Shoulder, Elbow, Wrist, Hip, Knee, Ankle, Heel, FootTip}

var landmarkNames = [...]string{"shoulder", "elbow", "wrist", "hip", "knee", "ankle", "heel", "foot_tip"}

func (l Landmark) String() string {
	if l < 0 || int(l) >= len(landmarkNames) {
		return fmt.Sprintf("landmark(%d)", int(l))
	}
	return landmarkNames[l]
}

// NumKeypoints is the frame size delivered by the pose source.
const NumKeypoints = 33

// BlazePose indices, left then right.
var landmarkIndex = map[Landmark][2]int{
	Shoulder: {11, 12},
	Elbow:    {13, 14},
	Wrist:    {15, 16},
	Hip:      {23, 24},
	Knee:     {25, 26},
	Ankle:    {27, 28},
	Heel:     {29, 30},
	FootTip:  {31, 32},
}

// Index returns the source keypoint index of l on side s. It returns false
// for SideUndefined or an unknown landmark.
func Index(l Landmark, s Side) (int, bool) {
	pair, ok := landmarkIndex[l]
	if !ok {
		return 0, false
	}
	switch s {
	case SideLeft:
		return pair[0], true
	case SideRight:
		return pair[1], true
	}
	return 0, false
}

// Joint names an anatomical angle measured from three landmarks.
type Joint string

const (
	JointShoulder Joint = "shoulder"
	JointElbow    Joint = "elbow"
	JointHip      Joint = "hip"
	JointKnee     Joint = "knee"
	JointAnkle    Joint = "ankle"
)

// Joints lists the measured joints in display order.
var Joints = []Joint{JointHip, JointKnee, JointAnkle, JointShoulder, JointElbow}

// Triplet is the landmark triple an angle is measured from; Vertex is the
// joint itself.
type Triplet struct {
	A, Vertex, C Landmark
}

var jointTriplets = map[Joint]Triplet{
	JointShoulder: {A: Elbow, Vertex: Shoulder, C: Hip},
	JointElbow:    {A: Shoulder, Vertex: Elbow, C: Wrist},
	JointHip:      {A: Shoulder, Vertex: Hip, C: Knee},
	JointKnee:     {A: Hip, Vertex: Knee, C: Ankle},
	JointAnkle:    {A: Knee, Vertex: Ankle, C: FootTip},
}

// TripletFor returns the landmark triple for j.
func TripletFor(j Joint) (Triplet, bool) {
	t, ok := jointTriplets[j]
	return t, ok
}

// Bone is a skeleton segment drawn between two landmarks.
type Bone struct {
	From, To Landmark
}

// Skeleton lists the segments of the single-side overlay.
var Skeleton = []Bone{
	{Shoulder, Elbow},
	{Elbow, Wrist},
	{Shoulder, Hip},
	{Hip, Knee},
	{Knee, Ankle},
	{Ankle, Heel},
	{Heel, FootTip},
	{Ankle, FootTip},
}
