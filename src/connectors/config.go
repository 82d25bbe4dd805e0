package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	XAIAPIURL      string  `envconfig:"XAI_API_URL" default:"https://api.x.ai/v1/chat/completions"`
	XAIAPIKey      string  `envconfig:"XAI_API_KEY" default:""`
	XAIModel       string  `envconfig:"XAI_MODEL" default:"grok-2-1212"`
	XAITemperature float64 `envconfig:"XAI_TEMPERATURE" default:"0.2"`
	XAITimeoutSecs int     `envconfig:"XAI_TIMEOUT_SECONDS" default:"60"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
