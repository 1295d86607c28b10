package importer

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:9898"`
	ImportFile string `envconfig:"IMPORT_FILE" default:"trades.json"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
