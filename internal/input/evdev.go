package input

import (
	"encoding/binary"
	"log"
	"os"
	"syscall"
)

// evKey is the EV_KEY event type from the Linux input ABI.
const evKey = 0x01

type rawKeyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// ReadDevice reads key events from a Linux evdev device node (e.g.
// /dev/input/event3) and forwards them as raw events. Key repeats are
// dropped; the escape key maps to a quit input. The goroutine exits when
// the device read fails.
func ReadDevice(path string, events chan<- Event) error {
	file, err := os.Open(path)
	if nil != err {
		return err
	}
	go func() {
		defer file.Close()

		var ev rawKeyEvent
		for {
			if err := binary.Read(file, binary.LittleEndian, &ev); nil != err {
				log.Println("unable to read input device:", err)
				return
			}
			if ev.Type != evKey || ev.Value > 1 {
				continue
			}
			state := Neutral
			if ev.Value == 1 {
				state = Positive
			}
			in := Input{Type: KeyInput, Code: int(ev.Code)}
			if ev.Code == KeyEsc {
				in = Input{Type: QuitInput}
			}
			events <- Event{Input: in, State: state}
		}
	}()
	return nil
}

// Drain collects the raw events pending on the channel without blocking.
func Drain(events <-chan Event) []Event {
	var pending []Event
	for {
		select {
		case ev := <-events:
			pending = append(pending, ev)
		default:
			return pending
		}
	}
}
