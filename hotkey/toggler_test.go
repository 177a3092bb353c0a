package hotkey

import (
	"testing"
	"time"
)

const testLongPress = 50 * time.Millisecond

func waitToggle(t *testing.T, tg *Toggler) {
	t.Helper()
	select {
	case <-tg.Events():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for toggle event")
	}
}

func expectNoToggle(t *testing.T, tg *Toggler) {
	t.Helper()
	select {
	case <-tg.Events():
		t.Fatal("unexpected toggle event")
	case <-time.After(3 * testLongPress):
	}
}

func TestTapTogglesOnThenOff(t *testing.T) {
	fk := NewFake()
	tg := NewToggler(fk, testLongPress)

	fk.SimTap()
	waitToggle(t, tg) // on

	expectNoToggle(t, tg) // toggled on, stays on

	fk.SimTap()
	waitToggle(t, tg) // off
}

func TestHoldIsPushToTalk(t *testing.T) {
	fk := NewFake()
	tg := NewToggler(fk, testLongPress)

	fk.SimKeydown()
	waitToggle(t, tg) // on

	time.Sleep(2 * testLongPress)
	fk.SimKeyup()
	waitToggle(t, tg) // off on release
}

func TestAlternatingSequence(t *testing.T) {
	fk := NewFake()
	tg := NewToggler(fk, testLongPress)

	for i := 0; i < 3; i++ {
		fk.SimTap()
		waitToggle(t, tg)
		fk.SimTap()
		waitToggle(t, tg)
	}
}
