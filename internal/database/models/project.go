package models

import (
	"database/sql"
	"time"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Project is the top-level unit of work. Code is the natural key used as the
// upsert conflict column; NotionID reconciles rows against the workspace.
type Project struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Code      string `gorm:"uniqueIndex;not null"`
	Name      string
	Company   string
	Requestor string

	StartDate    sql.NullTime `gorm:"type:date"`
	DeliveryDate sql.NullTime `gorm:"type:date"`

	Status ProjectStatus `gorm:"size:50"`

	NotionID     sql.NullString `gorm:"uniqueIndex"`
	LastEditedAt sql.NullTime
}

func (p Project) ExternalID() string  { return p.NotionID.String }
func (p Project) ConflictKey() string { return p.Code }
func (p Project) LocalID() uint       { return p.ID }
