package translation

import (
	"time"

	"github.com/google/uuid"
)

// Mapping is a remembered translation for one raw receipt string.
type Mapping struct {
	ID          uuid.UUID  `json:"id"`
	Original    string     `json:"original"`
	Translation string     `json:"translation"`
	Category    string     `json:"category,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	UsageCount  int64      `json:"usageCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
