//go:build linux || darwin || windows

package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// keys maps the final accelerator token onto an X/hotkey key code.
var keys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"space": hotkey.KeySpace,
}

// parseAccel splits an accelerator string into modifiers and a key.
// Modifier names are case-insensitive; "alt"/"option" and "super"/"cmd"/"win"
// map to the platform equivalents defined in the mods_*.go files.
func parseAccel(accel string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(accel)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("accelerator %q needs at least one modifier and a key", accel)
	}

	var mods []hotkey.Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := mods4platform[strings.TrimSpace(p)]
		if !ok {
			return nil, 0, fmt.Errorf("unknown modifier %q in %q", p, accel)
		}
		mods = append(mods, m)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keys[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("unknown key %q in %q", keyName, accel)
	}
	return mods, key, nil
}
