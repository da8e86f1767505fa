package serialization

import "errors"

// Checkpoint errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrParamCountMismatch = errors.New("parameter count mismatch")
	ErrTruncated          = errors.New("checkpoint truncated")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
)
