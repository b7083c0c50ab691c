package audit

import "time"

// Fields carries the audit timestamps every persisted entity embeds.
type Fields struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
