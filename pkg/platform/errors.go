package platform

import "errors"

// Sentinel errors for host operations.
var (
	// ErrResizeObserverUnsupported is returned when the host has no resize observer.
	ErrResizeObserverUnsupported = errors.New("platform: resize observer unsupported")

	// ErrBoxUnsupported is returned when the host cannot observe the requested box.
	ErrBoxUnsupported = errors.New("platform: observed box unsupported")

	// ErrDisconnected is returned when observing through a disconnected observer.
	ErrDisconnected = errors.New("platform: observer disconnected")
)
