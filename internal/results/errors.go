package results

import "errors"

var (
	ErrNotFound  = errors.New("pipeline result not found")
	ErrDuplicate = errors.New("pipeline result already exists")
)
