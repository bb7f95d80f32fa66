package board

type ReorderStagesRequest struct {
	FromIndex *int `json:"from_index" binding:"required"`
	ToIndex   *int `json:"to_index" binding:"required"`
}

type MoveLeadRequest struct {
	FromStageID int64 `json:"from_stage_id" binding:"required"`
	ToStageID   int64 `json:"to_stage_id" binding:"required"`
	ToIndex     *int  `json:"to_index" binding:"required"`
}

type MoveAdjacentRequest struct {
	Direction string `json:"direction" binding:"required,oneof=prev next"`
}

type WindowRequest struct {
	Count          int     `form:"count" binding:"min=0"`
	ScrollTop      float64 `form:"scroll_top"`
	ViewportHeight float64 `form:"viewport_height"`
	RowHeight      float64 `form:"row_height"`
}
