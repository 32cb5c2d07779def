//go:build !libretro

package standalone

// AppState represents the current state of the application
type AppState int

const (
	// StatePlaying is active gameplay, with the game menu on top when open
	StatePlaying AppState = iota
	// StateSettings shows application settings
	StateSettings
	// StateError shows a config or ROM load error with recovery actions
	StateError
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateSettings:
		return "Settings"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
