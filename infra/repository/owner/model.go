package owner

import (
	"time"

	"github.com/google/uuid"
)

// Owner is the minimal owner row the directory needs: the opaque owner id
// the external collaborator authenticates, plus the contact identifier
// transfers resolve recipients by. Registration and credentials live with
// that collaborator, not here.
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Owner model.
func (Owner) TableName() string {
	return "owners"
}
