package pipeline

type CreatePipelineRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type RenamePipelineRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type CreateStageRequest struct {
	Name  string `json:"name" binding:"required,min=1"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateStageRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}
