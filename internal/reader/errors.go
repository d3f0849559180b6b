package reader

import "fmt"

// FormatError signals a structurally malformed source file, for example a
// vertex element without position properties or a record count that does
// not match the declared one.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed point cloud file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed point cloud file %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError signals a file extension the reader does not know
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Ext)
}
