package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is the subscription tier of a tenant. FREE tenants are capped at
// FreePlanNoteLimit notes; PRO tenants are unlimited.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// FreePlanNoteLimit is the maximum number of notes a FREE tenant may hold.
const FreePlanNoteLimit = 3

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}

type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	Plan      Plan      `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
