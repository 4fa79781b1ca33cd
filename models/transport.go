package models

import "bus-route-server/routing"

type TransportMode string

const (
	Unknown TransportMode = "unknown"
	Walking TransportMode = "walk"
	Bus     TransportMode = "bus"
)

func ModeFromRouting(m routing.Mode) TransportMode {
	switch m {
	case routing.Walk:
		return Walking
	case routing.Bus:
		return Bus
	default:
		return Unknown
	}
}
