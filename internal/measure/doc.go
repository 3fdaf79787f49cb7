// Package measure turns traced contours into scaled radius and arc-length
// measurements.
//
// A measurement run is a straight line through four stages:
//
//  1. Preprocess the image into a binary edge map (package imaging)
//  2. Trace every border of the edge map (package contour)
//  3. Calibrate: the largest-area contour is the reference object, and the
//     scaling factor is reference_dimension / its closed perimeter
//  4. Classify: every contour is scored once as an arc (open arc length) and
//     once as a circle (minimal enclosing circle), filtered by Thresholds and,
//     for circles, by containment in the outer boundary
//
// The largest contour plays two roles: it is the calibration reference and
// its enclosing circle is the outer boundary that circle features must lie
// inside. It is selected once and shared by both.
//
// Radius and arc-length thresholds are compared in real-world units while
// the containment test is done in pixels. Callers comparing results with
// older measurement reports should keep that in mind.
//
// # Results
//
// Circles and arcs come from independent passes, so a contour can be
// reported as both. The ResultSet lists circles first, then arcs, with
// serial numbers 1..N. Measurer.Measure writes the annotated image and then
// the table, and only after every stage has succeeded.
package measure
