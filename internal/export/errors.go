package export

import "fmt"

// CompressionToolError reports a failed invocation of one of the external
// compression binaries (draco_encoder, gltfpack). Stderr carries whatever
// the tool printed before exiting.
type CompressionToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *CompressionToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *CompressionToolError) Unwrap() error {
	return e.Err
}
