package compiler

import "testing"

func TestScopeSlotAllocation(t *testing.T) {
	var scopes scopeStack
	scopes.push(1) // main: slot 0 is reserved for the args array

	a := scopes.declare("a", "int")
	b := scopes.declare("b", "float")
	c := scopes.declare("c", "Stream")
	if a.Slot != 1 || b.Slot != 2 || c.Slot != 3 {
		t.Errorf("slots = %d, %d, %d, want 1, 2, 3", a.Slot, b.Slot, c.Slot)
	}
}

func TestScopeEverySlotIsOneWide(t *testing.T) {
	// float and reference variables take one slot each, same as int.
	var scopes scopeStack
	scopes.push(0)
	scopes.declare("f", "float")
	v := scopes.declare("r", "Reactive")
	if v.Slot != 1 {
		t.Errorf("second slot = %d, want 1", v.Slot)
	}
}

func TestScopeFramesAreIndependent(t *testing.T) {
	var scopes scopeStack
	scopes.push(1)
	scopes.declare("x", "int")

	// A function frame starts fresh: parameters at 0..n-1, no visibility
	// into the outer frame.
	scopes.push(2)
	scopes.define("p", "int", 0)
	scopes.define("q", "float", 1)
	if _, ok := scopes.lookup("x"); ok {
		t.Error("inner frame can see outer variable")
	}
	v, ok := scopes.lookup("p")
	if !ok || v.Slot != 0 {
		t.Errorf("param p: got %v, %v", v, ok)
	}
	if w := scopes.declare("local", "int"); w.Slot != 2 {
		t.Errorf("first local after 2 params has slot %d, want 2", w.Slot)
	}

	scopes.pop()
	if _, ok := scopes.lookup("x"); !ok {
		t.Error("outer frame lost its variable after pop")
	}
}

func TestScopeRedeclarationTakesFreshSlot(t *testing.T) {
	var scopes scopeStack
	scopes.push(0)
	first := scopes.declare("x", "int")
	second := scopes.declare("x", "float")
	if second.Slot == first.Slot {
		t.Error("redeclaration should consume a new slot")
	}
	v, _ := scopes.lookup("x")
	if v.Type != "float" {
		t.Errorf("lookup after redeclaration: type %s, want float", v.Type)
	}
}
