package models

import (
	"database/sql"
	"time"
)

// ProductionOrder is a part to be produced for one project. PartCode is the
// natural key; ProjectID is resolved from the workspace relation.
type ProductionOrder struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProjectID sql.NullInt64 `gorm:"index"`
	Project   *Project      `gorm:"constraint:OnDelete:SET NULL"`

	PartCode      string `gorm:"uniqueIndex;not null"`
	PartName      string
	Material      string
	Quantity      int
	GeneralStatus string `gorm:"size:100"`

	Image sql.NullString

	NotionID     sql.NullString `gorm:"uniqueIndex"`
	LastEditedAt sql.NullTime
}

func (o ProductionOrder) ExternalID() string  { return o.NotionID.String }
func (o ProductionOrder) ConflictKey() string { return o.PartCode }
func (o ProductionOrder) LocalID() uint       { return o.ID }

// Terminal general statuses: an order in one of these never reactivates its
// project.
var terminalOrderStatuses = map[string]bool{
	"D5-TERMINADO": true,
	"D6-ENTREGADO": true,
	"CANCELADO":    true,
}

func IsTerminalOrderStatus(status string) bool {
	return terminalOrderStatuses[status]
}
