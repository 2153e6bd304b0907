//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var mods4platform = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModOption,
	"option":  hotkey.ModOption,
	"super":   hotkey.ModCmd,
	"cmd":     hotkey.ModCmd,
	"win":     hotkey.ModCmd,
}
