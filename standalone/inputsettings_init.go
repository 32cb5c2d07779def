//go:build !libretro

package standalone

import (
	"github.com/user-none/ndsui/standalone/screens/settings"
)

func init() {
	settings.KeyToNameFunc = KeyToName
	settings.PadToNameFunc = PadToName
	settings.IsReservedFunc = IsReservedKey
	settings.ResolveFunc = ResolveBinding
}
