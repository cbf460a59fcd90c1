package providers

import (
	"fmt"
	"path/filepath"
	"probpick/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")

	v.SetDefault("catalog.baseUrl", "https://solved.ac/api/v3")
	v.SetDefault("catalog.judgeUrl", "https://www.acmicpc.net")
	v.SetDefault("catalog.language", "ko")
	v.SetDefault("catalog.pageDelay", 100*time.Millisecond)
	v.SetDefault("catalog.maxPages", 50)
	v.SetDefault("catalog.timeout", 10*time.Second)

	v.SetDefault("selection.defaultTier", "standard")
	v.SetDefault("selection.tiers", map[string]interface{}{
		"standard": map[string]interface{}{"minLevel": 11, "maxLevel": 12, "minSolvers": 5000},
		"hard":     map[string]interface{}{"minLevel": 13, "maxLevel": 15, "minSolvers": 2000},
	})

	v.SetDefault("history.driver", "file")
	v.SetDefault("history.path", "./selected-problems.json")
	v.SetDefault("history.key", "probpick:selected-problems")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.warmInterval", 0)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// a missing .env is fine, the process env and config file still apply
	_ = godotenv.Load()

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "PROBPICK_LOG_LEVEL")
	v.BindEnv("history.driver", "PROBPICK_HISTORY_DRIVER")
	v.BindEnv("history.path", "PROBPICK_HISTORY_PATH")
	v.BindEnv("history.dsn", "PROBPICK_HISTORY_DSN")
	v.BindEnv("catalog.baseUrl", "PROBPICK_CATALOG_URL")
	v.BindEnv("selection.excludeUsers", "PROBPICK_EXCLUDE_USERS")

	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Selection.ExcludeUsers = normalizeUsers(conf.Selection.ExcludeUsers)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ProblemPicker"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// normalizeUsers accepts both a YAML list and a comma or space separated env value.
func normalizeUsers(users []string) []string {
	out := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		for _, part := range strings.FieldsFunc(u, func(r rune) bool { return r == ',' || r == ' ' }) {
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}
