package location

import (
	"context"
	"errors"
)

var (
	// ErrPermissionDenied means the positioning provider refused access.
	ErrPermissionDenied = errors.New("location: permission denied")
	// ErrUnavailable means no fix could be obtained.
	ErrUnavailable = errors.New("location: no fix available")
)

// Fix is a single coordinate reading from the positioning provider.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider is the device positioning collaborator. Permission is queried on
// every capture; a grant is never cached.
type Provider interface {
	RequestPermission(ctx context.Context) error
	CurrentFix(ctx context.Context) (Fix, error)
}
