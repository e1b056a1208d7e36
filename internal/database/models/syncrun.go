package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// SyncRun is the machine-readable report of one sync invocation.
type SyncRun struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Mode   string // full | incremental | range
	Status RunStatus

	Stats datatypes.JSON
	/*
	   {
	     "projects": {"written": 12, "skipped": 0},
	     "orders":   {"written": 40, "skipped": 3},
	     "planning": {"written": 95, "skipped": 1},
	     "machines_added": 2
	   }
	*/

	LastError sql.NullString

	StartedAt  time.Time
	FinishedAt time.Time
}
