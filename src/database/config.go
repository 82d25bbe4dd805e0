package database

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DatabaseURL switches storage to postgres when set. When empty the
	// journal runs on a local sqlite file.
	DatabaseURL  string `envconfig:"DATABASE_URL" default:""`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:"tradejournal.db"`
	GormLogLevel int    `envconfig:"GORM_LOG_LEVEL" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
