package lead

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrStageNotFound    = errors.New("stage not found")
	ErrFieldNotFound    = errors.New("custom field not found")
	ErrValueRequired    = errors.New("value required for this field")
	ErrValueWrongType   = errors.New("value does not match the field type")
	ErrOptionNotAllowed = errors.New("value is not one of the field options")
	ErrAlreadyClosed    = errors.New("lead is already marked lost or sold")
)
