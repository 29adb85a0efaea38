package gale

import "github.com/google/uuid"

// BodyHandle is an opaque, comparable identifier for a body owned by a
// World's arena. It carries no pointer, so it is safe for host code to
// store across frames.
type BodyHandle struct{ id uuid.UUID }

// ConstraintHandle is the constraint-side equivalent of BodyHandle.
type ConstraintHandle struct{ id uuid.UUID }

// Zero reports whether the handle is the unset zero value.
func (h BodyHandle) Zero() bool { return h.id == uuid.Nil }

// Zero reports whether the handle is the unset zero value.
func (h ConstraintHandle) Zero() bool { return h.id == uuid.Nil }

func newBodyHandle() BodyHandle { return BodyHandle{id: uuid.New()} }

func newConstraintHandle() ConstraintHandle { return ConstraintHandle{id: uuid.New()} }
