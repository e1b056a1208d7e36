package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
)

// syncRow is what the batch engine needs from a model: its workspace id, the
// value of its conflict column, and the generated local id after a write.
type syncRow interface {
	ExternalID() string
	ConflictKey() string
	LocalID() uint
}

// Columns rewritten on conflict. The conflict column itself, the primary
// key, and created_at never move. Project status is deliberately absent:
// routine re-sync must not reset an existing categorization.
var (
	projectUpdateCols = []string{
		"name", "company", "requestor", "start_date", "delivery_date",
		"notion_id", "last_edited_at", "updated_at",
	}
	orderUpdateCols = []string{
		"project_id", "part_name", "material", "quantity", "general_status",
		"image", "notion_id", "last_edited_at", "updated_at",
	}
	planningUpdateCols = []string{
		"order_id", "machine", "operator", "register", "planned_date",
		"planned_end", "check_in", "check_out", "last_edited_at", "updated_at",
	}
)

func (s *service) UpsertProjects(ctx context.Context, rows []models.Project) (map[string]uint, error) {
	return upsertBatch(s.db.WithContext(ctx), s.logger, rows, "code", projectUpdateCols)
}

func (s *service) UpsertOrders(ctx context.Context, rows []models.ProductionOrder) (map[string]uint, error) {
	return upsertBatch(s.db.WithContext(ctx), s.logger, rows, "part_code", orderUpdateCols)
}

func (s *service) UpsertPlannings(ctx context.Context, rows []models.Planning) (map[string]uint, error) {
	return upsertBatch(s.db.WithContext(ctx), s.logger, rows, "notion_id", planningUpdateCols)
}

// EnsureMachines registers lookup names not yet known, returning how many
// were new.
func (s *service) EnsureMachines(ctx context.Context, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}
	machines := make([]models.Machine, 0, len(names))
	for _, n := range names {
		machines = append(machines, models.Machine{Name: n})
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&machines)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

// upsertBatch writes a transformed batch in one statement, keyed on the
// conflict column. The batch is deduplicated keep-last first, because one
// page can carry two edits of the same record across cursor boundaries. A
// bulk failure falls back to per-row writes so a single bad record never
// blocks the rest; each lost row is logged with its key and cause. The
// returned map folds every written row's workspace id to its local id.
func upsertBatch[T syncRow](db *gorm.DB, logger *zap.Logger, rows []T, conflictCol string, updateCols []string) (map[string]uint, error) {
	result := make(map[string]uint)
	if len(rows) == 0 {
		return result, nil
	}

	rows = dedupeKeepLast(rows)

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: conflictCol}},
		DoUpdates: clause.AssignmentColumns(updateCols),
	}

	if err := db.Clauses(onConflict).Create(&rows).Error; err != nil {
		logger.Warn("bulk upsert failed, retrying per row",
			zap.String("conflict_column", conflictCol),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		for _, row := range rows {
			one := []T{row}
			if err := db.Clauses(onConflict).Create(&one).Error; err != nil {
				logger.Error("row upsert failed",
					zap.String("conflict_column", conflictCol),
					zap.String("key", row.ConflictKey()),
					zap.Error(err),
				)
				continue
			}
			collect(result, one)
		}
		return result, nil
	}

	collect(result, rows)
	return result, nil
}

func dedupeKeepLast[T syncRow](rows []T) []T {
	seen := make(map[string]int, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		key := row.ConflictKey()
		if i, ok := seen[key]; ok {
			out[i] = row
			continue
		}
		seen[key] = len(out)
		out = append(out, row)
	}
	return out
}

func collect[T syncRow](into map[string]uint, rows []T) {
	for _, row := range rows {
		if ext := row.ExternalID(); ext != "" {
			into[ext] = row.LocalID()
		}
	}
}
