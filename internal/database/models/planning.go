package models

import (
	"database/sql"
	"time"
)

// Planning is a scheduled machine/operator assignment for one production
// order. Timestamp fields hold naive local wall-clock values exactly as the
// scheduling UI should display them, so they are carried as text rather than
// timezone-shifted time.Time values. NotionID is the upsert conflict key.
type Planning struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	OrderID uint             `gorm:"index;not null"`
	Order   *ProductionOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Machine  string `gorm:"size:100"`
	Operator string
	Register string

	PlannedDate sql.NullString `gorm:"type:timestamp"`
	PlannedEnd  sql.NullString `gorm:"type:timestamp"`
	CheckIn     sql.NullString `gorm:"type:timestamp"`
	CheckOut    sql.NullString `gorm:"type:timestamp"`

	NotionID     sql.NullString `gorm:"uniqueIndex;not null"`
	LastEditedAt sql.NullTime
}

func (p Planning) ExternalID() string  { return p.NotionID.String }
func (p Planning) ConflictKey() string { return p.NotionID.String }
func (p Planning) LocalID() uint       { return p.ID }

// Machine is the flat lookup registry, populated reactively when a planning
// row references a name not yet known.
type Machine struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Name string `gorm:"uniqueIndex;not null"`
}
