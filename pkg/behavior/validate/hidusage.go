package validate

import "github.com/clavis/keymapd/pkg/keyerr"

// Packed HID usage layout: a 32-bit parameter splits into a 16-bit usage
// page (upper half) and a 16-bit usage ID (lower half), per the USB HID
// Usage Tables convention.
const (
	usagePageKeyboard = 0x07
	usagePageConsumer = 0x0C

	// keyboardUsageMax is the highest reserved keyboard/keypad usage ID
	// (USB HID Usage Tables, Keyboard/Keypad Page).
	keyboardUsageMax = 0xFF
	// consumerUsageMax bounds the consumer control page usage IDs this
	// engine recognizes.
	consumerUsageMax = 0x029C
)

func hidUsage(packed uint32) error {
	page := packed >> 16
	id := packed & 0xFFFF

	switch page {
	case usagePageKeyboard:
		if id > keyboardUsageMax {
			return keyerr.New(keyerr.InvalidParameters, "keyboard usage id out of range")
		}
		return nil
	case usagePageConsumer:
		if id > consumerUsageMax {
			return keyerr.New(keyerr.InvalidParameters, "consumer usage id out of range")
		}
		return nil
	default:
		return keyerr.New(keyerr.InvalidParameters, "unsupported hid usage page")
	}
}
