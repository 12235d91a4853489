package archive

import "errors"

var (
	// ErrPersistence wraps a failed store read, write or remove.
	ErrPersistence = errors.New("archive: store operation failed")
	// ErrCorrupt marks a stored payload that no longer decodes.
	ErrCorrupt = errors.New("archive: stored payload does not decode")
)
