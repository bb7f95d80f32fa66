package board

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrStageNotFound   = errors.New("stage not found on this board")
	ErrLeadNotFound    = errors.New("lead not found in the source stage")
	ErrCrossPipeline   = errors.New("destination stage belongs to another pipeline")
	ErrBoardClosed     = errors.New("board view is closed")
)
