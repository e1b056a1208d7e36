// Package syncer pulls the three workspace databases into the local store:
// projects first, then production orders, then planning rows, each phase
// feeding the identity maps the next one resolves against.
package syncer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/notion"
)

type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
	ModeRange       Mode = "range"
)

// Options selects the filter window and which phases run. No phase flag set
// means every phase runs; context loading is never skippable.
type Options struct {
	Mode  Mode
	Days  int       // incremental window, 0 = configured default
	Since time.Time // range mode
	Until time.Time // range mode, zero = open-ended

	SkipProjects bool
	SkipOrders   bool
	SkipPlanning bool
}

type PhaseStats struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}

// Stats is the observable result of a run.
type Stats struct {
	Projects      PhaseStats `json:"projects"`
	Orders        PhaseStats `json:"orders"`
	Planning      PhaseStats `json:"planning"`
	MachinesAdded int        `json:"machines_added"`
}

// Querier is the slice of the workspace client the syncer needs.
type Querier interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResponse, error)
}

// Mirror re-hosts one attachment, resolving to "" on any failure.
type Mirror interface {
	MirrorImage(ctx context.Context, ownerID, sourceURL string) string
}

// Databases binds the three workspace databases, each with its own
// watermark property name.
type Databases struct {
	Projects notion.EntityConfig
	Orders   notion.EntityConfig
	Planning notion.EntityConfig
}

type Syncer struct {
	source Querier
	store  database.Store
	mirror Mirror
	logger *zap.Logger

	dbs Databases

	pageSize    int
	defaultDays int
	now         func() time.Time
}

func New(source Querier, store database.Store, mirror Mirror, dbs Databases, pageSize, defaultDays int, logger *zap.Logger) *Syncer {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	if defaultDays <= 0 {
		defaultDays = 3
	}
	return &Syncer{
		source:      source,
		store:       store,
		mirror:      mirror,
		logger:      logger,
		dbs:         dbs,
		pageSize:    pageSize,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

// Run drives one sync to completion. Phases already committed stay
// committed when a later phase aborts; every phase is idempotent, so a
// re-run after a partial failure is always safe. The outcome is logged,
// persisted as a sync_runs row, and returned.
func (s *Syncer) Run(ctx context.Context, opts Options) (*Stats, error) {
	started := s.now()
	stats := &Stats{}

	err := s.run(ctx, opts, stats)

	s.recordRun(ctx, opts, stats, started, err)

	if err != nil {
		s.logger.Error("sync aborted", zap.Error(err))
		return stats, err
	}
	s.logger.Info("sync finished",
		zap.Int("projects_written", stats.Projects.Written),
		zap.Int("projects_skipped", stats.Projects.Skipped),
		zap.Int("orders_written", stats.Orders.Written),
		zap.Int("orders_skipped", stats.Orders.Skipped),
		zap.Int("planning_written", stats.Planning.Written),
		zap.Int("planning_skipped", stats.Planning.Skipped),
		zap.Int("machines_added", stats.MachinesAdded),
	)
	return stats, nil
}

func (s *Syncer) run(ctx context.Context, opts Options, stats *Stats) error {
	sctx, err := s.loadContext(ctx)
	if err != nil {
		return fmt.Errorf("loading sync context: %w", err)
	}

	if !opts.SkipProjects {
		if err := s.syncProjects(ctx, opts, sctx, stats); err != nil {
			return fmt.Errorf("projects phase: %w", err)
		}
	}
	if !opts.SkipOrders {
		if err := s.syncOrders(ctx, opts, sctx, stats); err != nil {
			return fmt.Errorf("orders phase: %w", err)
		}
	}
	if !opts.SkipPlanning {
		if err := s.syncPlanning(ctx, opts, sctx, stats); err != nil {
			return fmt.Errorf("planning phase: %w", err)
		}
	}
	return nil
}

// windowFilter builds the filter once per phase from the run-wide window
// selection. The watermark property name is per-database configuration.
func (s *Syncer) windowFilter(opts Options, watermarkProp string) *notion.Filter {
	switch opts.Mode {
	case ModeIncremental:
		days := opts.Days
		if days <= 0 {
			days = s.defaultDays
		}
		return notion.LastEditedOnOrAfter(watermarkProp, s.now().AddDate(0, 0, -days))
	case ModeRange:
		var since, until *notion.Filter
		if !opts.Since.IsZero() {
			since = notion.LastEditedOnOrAfter(watermarkProp, opts.Since)
		}
		if !opts.Until.IsZero() {
			until = notion.LastEditedOnOrBefore(watermarkProp, opts.Until)
		}
		return notion.And(since, until)
	}
	// Full mode fetches everything, unconditionally.
	return nil
}

// drain walks a database's pagination to exhaustion, one blocking
// round-trip at a time: the source API is rate limited and pages must land
// in order. A fetch failure is fatal for the run; aborting beats quietly
// syncing around a gap.
func (s *Syncer) drain(ctx context.Context, databaseID string, filter *notion.Filter, handle func([]notion.Page) error) error {
	cursor := ""
	for {
		resp, err := s.source.QueryDatabase(ctx, databaseID, notion.QueryRequest{
			PageSize:    s.pageSize,
			StartCursor: cursor,
			Filter:      filter,
		})
		if err != nil {
			return err
		}
		if err := handle(resp.Results); err != nil {
			return err
		}
		if !resp.HasMore || resp.NextCursor == nil {
			return nil
		}
		cursor = *resp.NextCursor
	}
}

func (s *Syncer) syncProjects(ctx context.Context, opts Options, sctx *Context, stats *Stats) error {
	filter := s.windowFilter(opts, s.dbs.Projects.WatermarkProp)

	err := s.drain(ctx, s.dbs.Projects.DatabaseID, filter, func(pages []notion.Page) error {
		var rows []models.Project
		for _, page := range pages {
			rec := notion.DecodeProject(page)
			row, ok := projectRow(rec)
			if !ok {
				stats.Projects.Skipped++
				continue
			}
			rows = append(rows, row)
		}

		written, err := s.store.UpsertProjects(ctx, rows)
		if err != nil {
			return err
		}
		stats.Projects.Written += len(written)

		for ext, id := range written {
			if ref, ok := sctx.Projects[ext]; ok {
				ref.ID = id
				sctx.Projects[ext] = ref
			} else {
				sctx.Projects[ext] = database.ProjectRef{ID: id, Status: models.ProjectActive}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.store.ActivateUnsetProjects(ctx)
}

func (s *Syncer) syncOrders(ctx context.Context, opts Options, sctx *Context, stats *Stats) error {
	filter := s.windowFilter(opts, s.dbs.Orders.WatermarkProp)

	return s.drain(ctx, s.dbs.Orders.DatabaseID, filter, func(pages []notion.Page) error {
		var (
			rows       []models.ProductionOrder
			recs       []notion.OrderRecord
			reactivate []uint
		)
		for _, page := range pages {
			rec := notion.DecodeOrder(page)
			row, ok := orderRow(rec, sctx)
			if !ok {
				stats.Orders.Skipped++
				continue
			}
			if id, flip := reactivation(rec, sctx); flip {
				reactivate = append(reactivate, id)
			}
			rows = append(rows, row)
			recs = append(recs, rec)
		}

		s.mirrorImages(ctx, rows, recs)

		// The project flips back to active alongside the order write:
		// an order in progress means its project is not finished.
		if err := s.store.ActivateProjects(ctx, reactivate); err != nil {
			return err
		}

		written, err := s.store.UpsertOrders(ctx, rows)
		if err != nil {
			return err
		}
		stats.Orders.Written += len(written)

		for ext, id := range written {
			sctx.Orders[ext] = id
		}
		return nil
	})
}

// mirrorImages fans out across the page's rows, at most one goroutine per
// row (the page size bounds concurrency). Each mirror is isolated: a
// failure resolves to no image and never cancels a sibling.
func (s *Syncer) mirrorImages(ctx context.Context, rows []models.ProductionOrder, recs []notion.OrderRecord) {
	var wg sync.WaitGroup
	for i := range rows {
		if recs[i].ImageURL == "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if url := s.mirror.MirrorImage(ctx, recs[i].NotionID, recs[i].ImageURL); url != "" {
				rows[i].Image = sql.NullString{String: url, Valid: true}
			}
		}(i)
	}
	wg.Wait()
}

func (s *Syncer) syncPlanning(ctx context.Context, opts Options, sctx *Context, stats *Stats) error {
	filter := s.windowFilter(opts, s.dbs.Planning.WatermarkProp)

	return s.drain(ctx, s.dbs.Planning.DatabaseID, filter, func(pages []notion.Page) error {
		var (
			rows        []models.Planning
			newMachines []string
		)
		for _, page := range pages {
			rec := notion.DecodePlanning(page)
			row, ok := planningRow(rec, sctx)
			if !ok {
				stats.Planning.Skipped++
				continue
			}
			if rec.Machine != "" && !sctx.Machines[rec.Machine] {
				sctx.Machines[rec.Machine] = true
				newMachines = append(newMachines, rec.Machine)
			}
			rows = append(rows, row)
		}

		added, err := s.store.EnsureMachines(ctx, newMachines)
		if err != nil {
			return err
		}
		stats.MachinesAdded += added

		written, err := s.store.UpsertPlannings(ctx, rows)
		if err != nil {
			return err
		}
		stats.Planning.Written += len(written)
		return nil
	})
}

func (s *Syncer) recordRun(ctx context.Context, opts Options, stats *Stats, started time.Time, runErr error) {
	payload, _ := json.Marshal(stats)

	run := &models.SyncRun{
		ID:         uuid.New(),
		Mode:       string(opts.Mode),
		Status:     models.RunCompleted,
		Stats:      datatypes.JSON(payload),
		StartedAt:  started,
		FinishedAt: s.now(),
	}
	if runErr != nil {
		run.Status = models.RunFailed
		run.LastError = sql.NullString{String: runErr.Error(), Valid: true}
	}

	if err := s.store.RecordRun(ctx, run); err != nil {
		s.logger.Warn("failed to record sync run", zap.Error(err))
	}
}
