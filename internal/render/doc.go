// Package render projects angles, pose skeletons and the alignment grid onto
// a gonum/plot vg.Canvas.
//
// Inputs are in screen space (y down, pixels). The adapter converts to vg's
// y-up space at the last moment, so arcs computed by geom.ArcDirection are
// painted with their angles negated. When the scene is flipped horizontally
// geometry is mirrored about the vertical centre line while text is still
// laid out left-to-right.
package render
