package models

type RouteRequest struct {
	Start *Location `json:"start" binding:"required"`
	End   *Location `json:"end" binding:"required"`
}
