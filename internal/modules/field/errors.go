package field

import "errors"

var (
	ErrFieldNotFound     = errors.New("custom field not found")
	ErrOptionsRequired   = errors.New("options required for select fields")
	ErrOptionsNotAllowed = errors.New("options only allowed on select fields")
	ErrUnknownType       = errors.New("unknown field type")
	ErrPipelineNotFound  = errors.New("pipeline not found")
)
