package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/config"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
)

// ProjectRef is an identity-map entry for a project, carrying the current
// status for the reactive-consistency check.
type ProjectRef struct {
	ID     uint
	Status models.ProjectStatus
}

// Store is everything the sync engine needs from the hosted database.
type Store interface {
	ProjectRefs(ctx context.Context) (map[string]ProjectRef, error)
	OrderIDs(ctx context.Context) (map[string]uint, error)
	MachineNames(ctx context.Context) (map[string]bool, error)

	UpsertProjects(ctx context.Context, rows []models.Project) (map[string]uint, error)
	UpsertOrders(ctx context.Context, rows []models.ProductionOrder) (map[string]uint, error)
	UpsertPlannings(ctx context.Context, rows []models.Planning) (map[string]uint, error)

	ActivateProjects(ctx context.Context, ids []uint) error
	ActivateUnsetProjects(ctx context.Context) error
	EnsureMachines(ctx context.Context, names []string) (int, error)

	RecordRun(ctx context.Context, run *models.SyncRun) error
	RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}

type service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	dsn := cfg.DSN()

	// Fail fast on bad credentials before gorm starts lazily connecting.
	if err := testConnection(dsn); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Project{},
		&models.ProductionOrder{},
		&models.Planning{},
		&models.Machine{},
		&models.SyncRun{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &service{db: db, logger: logger}, nil
}

// NewWithDB wraps an already-open gorm handle (tests).
func NewWithDB(db *gorm.DB, logger *zap.Logger) Store {
	return &service{db: db, logger: logger}
}

func testConnection(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

func (s *service) ActivateProjects(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id IN ?", ids).
		Update("status", models.ProjectActive).Error
}

// ActivateUnsetProjects backfills the default status for rows that were
// never categorized. Rows already carrying a meaningful status are left
// alone.
func (s *service) ActivateUnsetProjects(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.ProjectActive).Error
}

func (s *service) RecordRun(ctx context.Context, run *models.SyncRun) error {
	return s.db.WithContext(ctx).Create(run).Error
}

func (s *service) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	var runs []models.SyncRun
	if err := s.db.WithContext(ctx).
		Model(&models.SyncRun{}).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
