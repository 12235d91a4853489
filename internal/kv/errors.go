package kv

import "errors"

// ErrNotFound marks an absent key, as opposed to a store failure.
var ErrNotFound = errors.New("kv: key not found")
