// Package pose owns the keypoint side of the engine.
//
// Responsibilities: the landmark/joint/side enumeration (mapped once to the
// 33-point BlazePose indexing used by the external pose source), exponential
// keypoint smoothing, hysteresis-based body side selection, and per-joint
// angle sampling with confidence gating. SourceHandle tracks the load state of
// the external pose model on behalf of the surrounding application.
//
// Key types: Keypoint, Smoother, SideSelector, JointAngleSample, SourceHandle.
//
// Dependency rule: pose may depend on geom, never on zones, canvas or render.
package pose
