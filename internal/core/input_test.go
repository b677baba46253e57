package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionUp) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionLeft)
	if !f.Has(ActionUp) || !f.Has(ActionLeft) {
		t.Error("Has() should report triggered actions")
	}
	if got := f.Sequence(); !slices.Equal(got, []Action{ActionUp, ActionLeft}) {
		t.Errorf("Sequence() = %v, expected [Up Left]", got)
	}

	f.Clear()
	if f.Has(ActionUp) || len(f.Sequence()) != 0 {
		t.Error("Clear() should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report nothing")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set() on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	if ActionRight.String() != "Right" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
