package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/syncer"
)

type syncRequest struct {
	Mode  string `json:"mode"` // full | incremental | range
	Days  int    `json:"days"`
	Since string `json:"since"` // YYYY-MM-DD
	Until string `json:"until"`

	// Phase selectors; leaving all unset runs every phase.
	Projects *bool `json:"projects"`
	Orders   *bool `json:"orders"`
	Planning *bool `json:"planning"`
}

func (s *Server) addSyncEndPoint(g *echo.Group) {
	sync := g.Group("/sync")
	sync.POST("", s.runSync)
	sync.GET("/runs", s.listRuns)
}

func (s *Server) runSync(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "details": err.Error()})
	}

	opts, err := req.options()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_options", "details": err.Error()})
	}

	s.Logger.Info("sync triggered over HTTP",
		zap.String("user_id", userID),
		zap.String("mode", string(opts.Mode)),
	)

	stats, err := s.Syncer.Run(ctx, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "sync_failed",
			"details": err.Error(),
			"stats":   stats,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

func (s *Server) listRuns(c echo.Context) error {
	ctx := c.Request().Context()

	runs, err := s.Store.RecentRuns(ctx, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db_error", "details": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"runs": runs})
}

func (r syncRequest) options() (syncer.Options, error) {
	opts := syncer.Options{Mode: syncer.ModeFull, Days: r.Days}

	switch r.Mode {
	case "", "full":
	case "incremental":
		opts.Mode = syncer.ModeIncremental
	case "range":
		opts.Mode = syncer.ModeRange
	default:
		return opts, echo.NewHTTPError(http.StatusBadRequest, "unknown mode: "+r.Mode)
	}

	if r.Since != "" {
		t, err := time.Parse("2006-01-02", r.Since)
		if err != nil {
			return opts, err
		}
		opts.Since = t
		opts.Mode = syncer.ModeRange
	}
	if r.Until != "" {
		t, err := time.Parse("2006-01-02", r.Until)
		if err != nil {
			return opts, err
		}
		opts.Until = t
		opts.Mode = syncer.ModeRange
	}

	if r.Projects != nil || r.Orders != nil || r.Planning != nil {
		opts.SkipProjects = r.Projects == nil || !*r.Projects
		opts.SkipOrders = r.Orders == nil || !*r.Orders
		opts.SkipPlanning = r.Planning == nil || !*r.Planning
	}

	return opts, nil
}
