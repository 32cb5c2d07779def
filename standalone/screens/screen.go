//go:build !libretro

package screens

import (
	"github.com/user-none/ndsui/standalone/types"
)

// Aliases so screens and settings sections share one set of interfaces
type (
	ScreenCallback = types.ScreenCallback
	FocusRestorer  = types.FocusRestorer
	FocusManager   = types.FocusManager
)
