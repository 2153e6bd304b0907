//go:build windows

package hotkey

import "golang.design/x/hotkey"

var mods4platform = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModAlt,
	"option":  hotkey.ModAlt,
	"super":   hotkey.ModWin,
	"cmd":     hotkey.ModWin,
	"win":     hotkey.ModWin,
}
