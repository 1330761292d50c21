package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the account row. Balance is numeric, never a float column.
// Seq is the store-assigned lock ordinal: bigserial, unique, never reused.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq       int64           `gorm:"autoIncrement;uniqueIndex;not null"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
