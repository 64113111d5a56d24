// Package model provides the shared data types for the selection and
// highlight subsystem.
//
// The rendering collaborator supplies [TextFragment] values on every layout
// pass; the text model assigns their character ranges. [BBox], [Point], and
// [Rect] use screen coordinates with the origin at the top-left and y
// increasing downward. [CharRange] is the half-open [start, end) interval
// used for every overlap test in the module.
package model
