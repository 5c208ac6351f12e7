// Package pipeline runs one pose tick end to end: readiness check, pixel
// scaling, smoothing, side selection, joint sampling and zone
// classification.
//
// An Engine is driven by a single caller, one synchronous Tick per frame
// delivered by the pose source.
package pipeline
