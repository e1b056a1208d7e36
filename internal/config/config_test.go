package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NOTION_TOKEN", "secret-token")
	t.Setenv("NOTION_PROJECTS_DB", "db-projects")
	t.Setenv("NOTION_ORDERS_DB", "db-orders")
	t.Setenv("NOTION_PLANNING_DB", "db-planning")
	t.Setenv("SUPABASE_URL", "https://xyz.supabase.co/")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("DB_HOST", "db.xyz.supabase.co")
	t.Setenv("DB_USERNAME", "postgres")
	t.Setenv("DB_PASSWORD", "p@ss/word")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.Notion.Token)
	assert.Equal(t, "https://xyz.supabase.co", cfg.Supabase.URL, "trailing slash trimmed")
	assert.Equal(t, "item-images", cfg.Supabase.Bucket)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, ":8090", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Sync.Days)
	assert.Equal(t, 100, cfg.Sync.PageSize)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_BUCKET", "part-photos")
	t.Setenv("SYNC_DAYS", "14")
	t.Setenv("SYNC_PAGE_SIZE", "50")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "part-photos", cfg.Supabase.Bucket)
	assert.Equal(t, 14, cfg.Sync.Days)
	assert.Equal(t, 50, cfg.Sync.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadReportsAllMissingVariables(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTION_TOKEN")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.NotContains(t, err.Error(), "DB_HOST")
}

func TestDSNEscapesPassword(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres:p%40ss%2Fword@db.xyz.supabase.co:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "search_path=public")
}

func TestDSNEscapesSpaceInPassword(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PASSWORD", "two words")

	dsn := mustLoad(t).DSN()
	assert.Contains(t, dsn, "postgres:two%20words@", "userinfo escaping, not query escaping")
	assert.NotContains(t, dsn, "two+words")
}

func mustLoad(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}
