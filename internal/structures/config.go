package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode" validate:"required|uint"`
	Dir   string `mapstructure:"dir" validate:"required"`
}

type CatalogConfig struct {
	BaseUrl   string        `mapstructure:"baseUrl" validate:"required|fullUrl"`
	JudgeUrl  string        `mapstructure:"judgeUrl" validate:"required|fullUrl"`
	Language  string        `mapstructure:"language"`
	PageDelay time.Duration `mapstructure:"pageDelay"`
	MaxPages  int           `mapstructure:"maxPages" validate:"required|min:1|max:50"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// TierConfig is an inclusive catalog level band plus the minimum solver count.
type TierConfig struct {
	MinLevel   int `mapstructure:"minLevel"`
	MaxLevel   int `mapstructure:"maxLevel"`
	MinSolvers int `mapstructure:"minSolvers"`
}

type SelectionConfig struct {
	ExcludeUsers []string              `mapstructure:"excludeUsers"`
	DefaultTier  string                `mapstructure:"defaultTier" validate:"required"`
	Tiers        map[string]TierConfig `mapstructure:"tiers" validate:"required"`
}

type HistoryConfig struct {
	Driver     string `mapstructure:"driver" validate:"required|in:file,sqlite,redis,postgres"`
	Path       string `mapstructure:"path"`
	Dsn        string `mapstructure:"dsn"`
	Key        string `mapstructure:"key"`
	ArchiveDir string `mapstructure:"archiveDir"`
}

type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Size         int           `mapstructure:"size"`
	TTL          time.Duration `mapstructure:"ttl"`
	WarmInterval time.Duration `mapstructure:"warmInterval"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `mapstructure:"webServer"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Selection SelectionConfig `mapstructure:"selection"`
	History   HistoryConfig   `mapstructure:"history"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}
