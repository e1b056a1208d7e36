package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Notion struct {
		Token      string
		ProjectsDB string
		OrdersDB   string
		PlanningDB string
	}

	Supabase struct {
		URL        string // project base URL, e.g. https://xyz.supabase.co
		ServiceKey string
		Bucket     string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		Schema   string
		SSLMode  string
	}

	HTTP struct {
		Addr string
	}

	Sync struct {
		Days     int // incremental window size
		PageSize int
	}

	Log struct {
		Level string
	}
}

// Load reads configuration from the environment. Any missing required
// variable is a startup error carrying every missing name at once.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.Notion.Token = required("NOTION_TOKEN")
	cfg.Notion.ProjectsDB = required("NOTION_PROJECTS_DB")
	cfg.Notion.OrdersDB = required("NOTION_ORDERS_DB")
	cfg.Notion.PlanningDB = required("NOTION_PLANNING_DB")

	cfg.Supabase.URL = strings.TrimSuffix(required("SUPABASE_URL"), "/")
	cfg.Supabase.ServiceKey = required("SUPABASE_SERVICE_KEY")
	cfg.Supabase.Bucket = getEnv("SUPABASE_BUCKET", "item-images")

	cfg.Database.Host = required("DB_HOST")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = required("DB_USERNAME")
	cfg.Database.Password = required("DB_PASSWORD")
	cfg.Database.Name = getEnv("DB_DATABASE", "postgres")
	cfg.Database.Schema = getEnv("DB_SCHEMA", "public")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "require")

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8090")

	cfg.Sync.Days = parseInt(getEnv("SYNC_DAYS", "3"), 3)
	cfg.Sync.PageSize = parseInt(getEnv("SYNC_PAGE_SIZE", "100"), 100)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// DSN builds the postgres connection string the way the hosted database
// expects it. Credentials go through url.UserPassword: userinfo escaping
// differs from query escaping (a space is %20 there, never +).
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s&search_path=%s",
		url.UserPassword(c.Database.User, c.Database.Password).String(),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.Schema,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
