package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"go.uber.org/zap"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/syncer"
)

// Server exposes the sync engine over HTTP: an authenticated trigger plus
// the run-report log. The website's scheduled jobs and admins both hit it.
type Server struct {
	Addr    string
	Syncer  *syncer.Syncer
	Store   database.Store
	JWKSURL string
	Logger  *zap.Logger

	jwksCache jwk.Set
	jwksOnce  sync.Once
	jwksErr   error
}

func NewServer(serv *Server) *http.Server {
	return &http.Server{
		Addr:         serv.Addr,
		Handler:      serv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full sync can take a while
	}
}

// SupabaseJWKSURL locates the JWKS endpoint for a hosted project.
func SupabaseJWKSURL(projectURL string) string {
	return fmt.Sprintf("%s/auth/v1/.well-known/jwks.json", projectURL)
}
