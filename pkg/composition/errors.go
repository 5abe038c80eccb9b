package composition

import "errors"

// Sentinel errors for composition operations.
var (
	ErrLayerNotFound = errors.New("layer not found")
	ErrNoPlacement   = errors.New("no placement candidate available")
)
