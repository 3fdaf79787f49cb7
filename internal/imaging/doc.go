// Package imaging provides the raster side of the measurement tools:
// loading, preprocessing, annotation and saving.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Loading
//
// LoadFile decodes PNG, JPEG, GIF, BMP, TIFF and WebP files. Resolve accepts
// any image locator the measurement pipeline understands: a path, an encoded
// buffer or an already decoded image. Failures are typed:
//   - *InputTypeError: the locator is none of the above
//   - *InputNotFoundError: the path does not name an existing file
//   - *DecodeError: the content is not a decodable image
//
// ImageCache memoizes LoadFile by path for the inspection tools.
//
// # Preprocessing
//
// EdgeMap is the fixed preprocessing chain that feeds contour extraction:
//
//	Grayscale (BT.601) -> GaussianBlur (5x5, sigma from size) -> Canny(100, 200)
//
// The result is a binary *image.Gray whose bounds start at (0,0); edge pixels
// are 255 and everything else is 0. The chain is deterministic, so the same
// input always yields the same edge map.
//
// # Annotation and Output
//
// Annotate strokes traced arcs and enclosing circles onto a copy of the
// source with their labels. SaveImage writes any image in the format implied
// by the file extension, and CheckImageFormat lets callers reject an
// unsupported extension before doing any work.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function is
// stateless and never modifies its input image.
package imaging
