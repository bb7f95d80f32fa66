package pipeline

import "errors"

var (
	ErrPipelineNotFound = errors.New("pipeline not found")
	ErrStageNotFound    = errors.New("stage not found")
	ErrDuplicateStage   = errors.New("stage name already used in this pipeline")
	ErrLastStage        = errors.New("cannot delete the last stage of a pipeline")
)
