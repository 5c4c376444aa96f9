package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      int
	Path       string
	Format     string
	Output     string
	OutputFile string
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      getIntOrDefault(v, "logger.level", 4),
		Format:     v.GetString("logger.format"),
		Path:       v.GetString("logger.path"),
		Output:     getStringOrDefault(v, "logger.output", "stdout"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
