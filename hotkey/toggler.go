package hotkey

import "time"

// Toggler turns raw keydown/keyup pairs into session toggle events,
// supporting both interaction styles on the same combo:
//
//   - tap (released before longPress): toggles recording on; the release
//     of the next press toggles it off
//   - hold (released after longPress): push-to-talk, toggles off on release
//
// Either way the consumer sees a plain alternating toggle stream.
type Toggler struct {
	events chan struct{}
}

const DefaultLongPress = 350 * time.Millisecond

func NewToggler(hk Hotkey, longPress time.Duration) *Toggler {
	t := &Toggler{events: make(chan struct{}, 1)}
	go t.run(hk, longPress)
	return t
}

// Events returns the toggle stream. Consumers that are busy (e.g. mid
// transcription) miss events rather than queue them.
func (t *Toggler) Events() <-chan struct{} { return t.events }

func (t *Toggler) emit() {
	select {
	case t.events <- struct{}{}:
	default:
	}
}

func (t *Toggler) run(hk Hotkey, longPress time.Duration) {
	for {
		// idle: any press starts recording
		<-hk.Keydown()
		t.emit()

		timer := time.NewTimer(longPress)
		select {
		case <-timer.C:
			// hold: stop on release
			<-hk.Keyup()
			t.emit()
		case <-hk.Keyup():
			// tap: toggled on, next press+release stops
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			<-hk.Keydown()
			<-hk.Keyup()
			t.emit()
		}
	}
}
