package network

import (
	"github.com/talgya/hydronet/internal/units"
)

// UpdateStatus records where a derived field's current value came from:
// typed in by the user, or written by the engine.
type UpdateStatus uint8

const (
	StatusAuto   UpdateStatus = iota // engine-computed, safe to overwrite
	StatusManual                     // user-entered, engine must not touch
)

func (s UpdateStatus) String() string {
	if s == StatusManual {
		return "manual"
	}
	return "auto"
}

// Tracked wraps a quantity with its provenance. All engine writes go
// through SetAuto, which refuses to clobber a manual value, so the
// "never overwrite manual" invariant holds by construction.
type Tracked struct {
	Quantity units.Quantity `json:"quantity"`
	Status   UpdateStatus   `json:"status"`
}

// SetManual records a user-entered value.
func (t *Tracked) SetManual(q units.Quantity) {
	t.Quantity = q
	t.Status = StatusManual
}

// SetAuto records an engine-computed value. It reports false, leaving the
// field untouched, when the current value is manual.
func (t *Tracked) SetAuto(q units.Quantity) bool {
	if t.Status == StatusManual {
		return false
	}
	t.Quantity = q
	return true
}

// Release downgrades a manual field back to auto without changing the value.
func (t *Tracked) Release() {
	t.Status = StatusAuto
}
