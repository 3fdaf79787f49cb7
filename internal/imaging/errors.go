package imaging

import "fmt"

// InputTypeError reports an image locator of an unsupported Go type.
//
// Accepted locators are a file path (string), an encoded image buffer ([]byte)
// and an already decoded image.Image.
type InputTypeError struct {
	// Got is the dynamic type of the rejected locator, as printed by %T.
	Got string
}

func (e *InputTypeError) Error() string {
	return fmt.Sprintf("unsupported image locator type %s: expected a path, an encoded buffer or an image", e.Got)
}

// InputNotFoundError reports a path that does not resolve to an existing file.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("file not found at %s", e.Path)
}

// DecodeError reports input that exists but cannot be parsed as an image.
// Path is empty when the input was an in-memory buffer.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to decode image buffer: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
