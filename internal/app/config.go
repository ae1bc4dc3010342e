package app

import "errors"

// Config holds everything an App needs to run one command.
type Config struct {
	TablesPath  string // .hcl table definition file or directory
	RecordsPath string // optional YAML records fixture

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TablesPath == "" {
		return nil, errors.New("TablesPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
