package movement

import "campaignmap/internal/domain/world"

type StepRequest struct {
	CharacterID int64
	DX          int
	DY          int
}

type TeleportRequest struct {
	CharacterID int64
	To          world.Point
}

type Response struct {
	Success bool        `json:"success"`
	From    world.Point `json:"from"`
	To      world.Point `json:"to"`
	Events  []string    `json:"events"`
}
