package input

import (
	"unicode"

	"github.com/eiannone/keyboard"
)

// ReadKeyboard reads key presses from the terminal and forwards them as raw
// events. Terminals report no key releases, so every press is followed by an
// immediate synthetic release; long note holds need a real input device via
// ReadDevice instead. Close the keyboard to stop the goroutine.
func ReadKeyboard(events chan<- Event) error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return err
	}
	go func() {
		for key := range keys {
			if nil != key.Err {
				return
			}
			in, ok := keyboardInput(key)
			if !ok {
				continue
			}
			events <- Event{Input: in, State: Positive}
			if in.Type != QuitInput {
				events <- Event{Input: in, State: Neutral}
			}
		}
	}()
	return nil
}

func keyboardInput(key keyboard.KeyEvent) (Input, bool) {
	switch key.Key {
	case keyboard.KeyEsc:
		return Input{Type: QuitInput}, true
	case keyboard.KeyF3:
		return Input{Type: KeyInput, Code: keyCodes["f3"]}, true
	case keyboard.KeyF4:
		return Input{Type: KeyInput, Code: keyCodes["f4"]}, true
	case keyboard.KeySpace:
		return Input{Type: KeyInput, Code: KeySpace}, true
	}
	if key.Rune == 0 {
		return Input{}, false
	}
	code, ok := keyCodes[string(unicode.ToLower(key.Rune))]
	if !ok {
		return Input{}, false
	}
	return Input{Type: KeyInput, Code: code}, true
}
