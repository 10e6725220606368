package scene

import "errors"

// ErrInvalidDocument is returned when persisted scene data cannot be
// loaded. The scene keeps its prior state when this error is returned.
var ErrInvalidDocument = errors.New("scene: invalid document")
