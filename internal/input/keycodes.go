package input

// Key codes follow the Linux input event codes, which the evdev reader
// reports directly.
// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	KeyEsc        = 1
	KeyEnter      = 28
	KeyLeftShift  = 42
	KeyRightShift = 54
	KeyLeftAlt    = 56
	KeyRightAlt   = 100
	KeySpace      = 57
)

// keyCodes maps lowercase key names used in binding strings to event codes.
var keyCodes = map[string]int{
	"escape":      KeyEsc,
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"space":       KeySpace,
	"left shift":  KeyLeftShift,
	"right shift": KeyRightShift,
	"left alt":    KeyLeftAlt,
	"right alt":   KeyRightAlt,
	"left ctrl":   29,
	"right ctrl":  97,
	"tab":         15,
	"backspace":   14,
	"grave":       41,
	"minus":       12,
	"equals":      13,
	",":           51,
	".":           52,
	"/":           53,
	";":           39,
	"'":           40,
	"[":           26,
	"]":           27,
	"\\":          43,
	"up":          103,
	"down":        108,
	"left":        105,
	"right":       106,
}

func init() {
	// Letter rows.
	for i, c := range "qwertyuiop" {
		keyCodes[string(c)] = 16 + i
	}
	for i, c := range "asdfghjkl" {
		keyCodes[string(c)] = 30 + i
	}
	for i, c := range "zxcvbnm" {
		keyCodes[string(c)] = 44 + i
	}
	// Digits; 0 follows 9 in the event code table.
	for i, c := range "1234567890" {
		keyCodes[string(c)] = 2 + i
	}
	// Function keys.
	for i := 0; i < 9; i++ {
		keyCodes["f"+string(rune('1'+i))] = 59 + i
	}
	keyCodes["f10"] = 68
	keyCodes["f11"] = 87
	keyCodes["f12"] = 88
}
