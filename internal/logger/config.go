package logger

type LoggerConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or console
	Development bool   `yaml:"development"`
}

func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Format: "json",
	}
}

func DevelopmentConfig() LoggerConfig {
	return LoggerConfig{
		Level:       "debug",
		Format:      "console",
		Development: true,
	}
}
