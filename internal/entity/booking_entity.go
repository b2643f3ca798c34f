package entity

import "time"

// Booking is the reservation summary produced by the reservation stage.
// Created once per case and never mutated afterwards.
type Booking struct {
	Confirmed bool      `json:"confirmed"`
	Place     string    `json:"place"`
	SlotAt    time.Time `json:"slot_iso"`
	SlotHuman string    `json:"slot_human"`
	Note      string    `json:"note"`
}
