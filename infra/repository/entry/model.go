package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one row of the append-only transaction log. There is no
// UpdatedAt on purpose: committed entries are never touched again.
type Entry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type         string          `gorm:"type:varchar(16);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Fee          decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	Counterparty *string         `gorm:"type:varchar(255)"`
	Description  string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "entries"
}
