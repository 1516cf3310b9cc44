package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
)

// Member maps the members table. Rows are deleted physically, so there is
// no DeletedAt column.
type Member struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:text;not null"`
	Username  string         `gorm:"type:text;not null;uniqueIndex"`
	Email     string         `gorm:"type:text;not null;uniqueIndex"`
	Avatar    string         `gorm:"type:text"`
	IsActive  null.Bool      `gorm:"column:is_active"`
	Role      string         `gorm:"type:text;not null"`
	Teams     pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Member) TableName() string {
	return "members"
}
