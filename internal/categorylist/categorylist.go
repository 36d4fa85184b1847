package categorylist

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

// List is a named, stored taxonomy. At most one list is the default.
type List struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Categories taxonomy.Taxonomy `json:"categories"`
	IsDefault  bool              `json:"isDefault"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}
