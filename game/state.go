package game

import (
	"fmt"

	"github.com/plus3/tilegate/events"
)

type GameState int

const (
	StateLoading GameState = iota
	StateMainMenu
	StateOptions
	StateStartPlaying
	StatePlaying
	StatePaused
	StateCompleted
)

func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateMainMenu:
		return "MainMenu"
	case StateOptions:
		return "Options"
	case StateStartPlaying:
		return "StartPlaying"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// StateChanged carries requests to switch the game state.
var StateChanged = events.NewTopic[GameState]("update-game-state")

// systemSlot names the game systems in registration order.
type systemSlot int

const (
	slotLevelBuilder systemSlot = iota
	slotCameraFollow
	slotControllable
	slotTransform
	slotCollidable
	slotDrawColour
	slotLevelStatus
	slotInteraction
	slotGate
	slotCount
)

// stateTable lists the disabled flag of every slot per state. States
// missing from the table leave the flags untouched.
var stateTable = map[GameState][slotCount]bool{
	StateStartPlaying: {},
	StatePlaying: {
		slotLevelBuilder: true,
	},
	StatePaused: {
		slotLevelBuilder: true,
		slotCameraFollow: true,
		slotControllable: true,
		slotTransform:    true,
		slotCollidable:   true,
		slotLevelStatus:  true,
		slotInteraction:  true,
		slotGate:         true,
	},
	StateCompleted: {
		true, true, true, true, true, true, true, true, true,
	},
}
