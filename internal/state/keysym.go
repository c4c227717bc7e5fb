package state

// Keysym is an X11/xkbcommon keysym value as delivered by the
// compositor's keyboard events.
type Keysym uint32

// Keysyms the state machine dispatches on.
const (
	KeyBackSpace  Keysym = 0xff08
	KeyTab        Keysym = 0xff09
	KeyReturn     Keysym = 0xff0d
	KeyEscape     Keysym = 0xff1b
	KeyUp         Keysym = 0xff52
	KeyDown       Keysym = 0xff54
	KeyKPEnter    Keysym = 0xff8d
	KeyKPUp       Keysym = 0xff97
	KeyKPDown     Keysym = 0xff99
	KeyISOLeftTab Keysym = 0xfe20
)

// isTab recognizes Tab and ISO_Left_Tab, plus the raw keysym codes some
// compositors report for them.
func isTab(k Keysym) bool {
	return k == KeyTab || k == KeyISOLeftTab || uint32(k) == 0xff09 || uint32(k) == 0xfe20
}

// KeysymToChar maps ASCII printable keysyms (0x20-0x7e) to their
// character. Everything else is not text input.
func KeysymToChar(k Keysym) (byte, bool) {
	if k >= 0x20 && k <= 0x7e {
		return byte(k), true
	}
	return 0, false
}

// cycleIndex advances current by one in either direction, wrapping
// modulo length. Zero length always yields 0.
func cycleIndex(current, length int, forward bool) int {
	if length == 0 {
		return 0
	}
	if forward {
		return (current + 1) % length
	}
	if current == 0 {
		return length - 1
	}
	return current - 1
}
