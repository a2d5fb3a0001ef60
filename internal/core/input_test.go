package core

import "testing"

func TestInputFrameKeepsOrderAndRepeats(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone) // ignored
	f.Set(ActionRotate)
	f.Set(ActionLeft)

	want := []Action{ActionLeft, ActionRotate, ActionLeft}
	if f.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", f.Len(), len(want))
	}
	for i, a := range want {
		if f.Events[i] != a {
			t.Errorf("Events[%d] = %v, expected %v", i, f.Events[i], a)
		}
	}

	if !f.Has(ActionRotate) {
		t.Error("Has(Rotate) should be true")
	}
	if f.Has(ActionSoftDrop) {
		t.Error("Has(SoftDrop) should be false")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionSoftDrop)

	clone := f.Clone()
	f.Clear()

	if f.Len() != 0 {
		t.Errorf("Clear should empty the frame, got %d events", f.Len())
	}
	if !clone.Has(ActionSoftDrop) {
		t.Error("Clone should not be affected by Clear on the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionRotate.String() != "Rotate" {
		t.Errorf("ActionRotate.String() = %q", ActionRotate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
