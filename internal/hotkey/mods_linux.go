//go:build linux

package hotkey

import "golang.design/x/hotkey"

var mods4platform = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.Mod1,
	"option":  hotkey.Mod1,
	"super":   hotkey.Mod4,
	"cmd":     hotkey.Mod4,
	"win":     hotkey.Mod4,
}
