package mapper

import "graph-mapper/internal/plan"

// Mode selects how MapToStorage treats the source identity.
type Mode = plan.Mode

const (
	// ModeInherit takes the mode from the next configuration layer.
	ModeInherit = plan.ModeInherit
	// ModeUpsert updates when the source has an identity and inserts
	// otherwise. It is the default.
	ModeUpsert = plan.ModeUpsert
	// ModeInsert always inserts. A client-assigned identity is accepted as
	// long as nothing is stored under it.
	ModeInsert = plan.ModeInsert
	// ModeUpdate always updates an existing entity.
	ModeUpdate = plan.ModeUpdate
	// ModeMemoryOnly forbids mapping the pair against storage.
	ModeMemoryOnly = plan.ModeMemoryOnly
)
