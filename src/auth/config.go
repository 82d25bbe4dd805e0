package auth

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	JWTSecret string `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	TokenTTL  int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
