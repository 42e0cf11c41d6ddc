// Package keytracker turns polled key state into press and release edges.
package keytracker

// Edge is the change in a key's state between two polls.
type Edge int

const (
	None Edge = iota
	Pressed
	Released
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// Update records the current state and returns the edge since the last call.
func (k *KeyStateTracker) Update(pressed bool) Edge {
	edge := None
	switch {
	case pressed && !k.prevPressed:
		edge = Pressed
	case !pressed && k.prevPressed:
		edge = Released
	}
	k.prevPressed = pressed
	return edge
}
