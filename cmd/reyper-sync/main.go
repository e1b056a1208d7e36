// reyper-sync pulls the Notion workspace into the hosted database once and
// exits. Intended to run from cron or by hand.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/config"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/notion"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/storage"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/syncer"
)

type flags struct {
	full        bool
	incremental bool
	days        int
	since       string
	until       string

	projects bool
	items    bool
	planning bool

	skipProjects bool
	skipItems    bool
}

func main() {
	var f flags

	root := &cobra.Command{
		Use:           "reyper-sync",
		Short:         "Sync projects, production orders and planning from Notion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	root.Flags().BoolVar(&f.full, "full", false, "sync everything, no window")
	root.Flags().BoolVar(&f.incremental, "incremental", false, "sync records edited in the last N days")
	root.Flags().IntVar(&f.days, "days", 0, "incremental window size in days")
	root.Flags().StringVar(&f.since, "since", "", "sync records edited on or after DATE (YYYY-MM-DD)")
	root.Flags().StringVar(&f.until, "until", "", "sync records edited on or before DATE (YYYY-MM-DD)")
	root.Flags().BoolVar(&f.projects, "projects", false, "run the projects phase")
	root.Flags().BoolVar(&f.items, "items", false, "run the production-orders phase")
	root.Flags().BoolVar(&f.planning, "planning", false, "run the planning phase")
	root.Flags().BoolVar(&f.skipProjects, "skip-projects", false, "skip the projects phase")
	root.Flags().BoolVar(&f.skipItems, "skip-items", false, "skip the production-orders phase")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := database.New(cfg, logger)
	if err != nil {
		return err
	}

	source := notion.NewClient(cfg.Notion.Token, logger)
	mirror := storage.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Bucket, logger)

	s := syncer.New(source, store, mirror, syncer.Databases{
		Projects: notion.EntityConfig{DatabaseID: cfg.Notion.ProjectsDB, WatermarkProp: notion.ProjectsWatermark},
		Orders:   notion.EntityConfig{DatabaseID: cfg.Notion.OrdersDB, WatermarkProp: notion.OrdersWatermark},
		Planning: notion.EntityConfig{DatabaseID: cfg.Notion.PlanningDB, WatermarkProp: notion.PlanningWatermark},
	}, cfg.Sync.PageSize, cfg.Sync.Days, logger)

	stats, err := s.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("projects: %d written, %d skipped\n", stats.Projects.Written, stats.Projects.Skipped)
	fmt.Printf("orders:   %d written, %d skipped\n", stats.Orders.Written, stats.Orders.Skipped)
	fmt.Printf("planning: %d written, %d skipped\n", stats.Planning.Written, stats.Planning.Skipped)
	fmt.Printf("machines: %d added\n", stats.MachinesAdded)
	return nil
}

func (f flags) options() (syncer.Options, error) {
	opts := syncer.Options{Mode: syncer.ModeFull, Days: f.days}

	if f.full && f.incremental {
		return opts, errors.New("--full and --incremental are mutually exclusive")
	}
	if f.incremental {
		opts.Mode = syncer.ModeIncremental
	}

	if f.since != "" {
		t, err := time.Parse("2006-01-02", f.since)
		if err != nil {
			return opts, fmt.Errorf("invalid --since: %w", err)
		}
		opts.Since = t
		opts.Mode = syncer.ModeRange
	}
	if f.until != "" {
		t, err := time.Parse("2006-01-02", f.until)
		if err != nil {
			return opts, fmt.Errorf("invalid --until: %w", err)
		}
		opts.Until = t
		opts.Mode = syncer.ModeRange
	}

	// Explicit phase selectors limit the run to what was named; otherwise
	// every phase runs. Skip flags subtract either way.
	if f.projects || f.items || f.planning {
		opts.SkipProjects = !f.projects
		opts.SkipOrders = !f.items
		opts.SkipPlanning = !f.planning
	}
	if f.skipProjects {
		opts.SkipProjects = true
	}
	if f.skipItems {
		opts.SkipOrders = true
	}

	return opts, nil
}
