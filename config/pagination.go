package config

import (
	"github.com/spf13/viper"
)

// Pagination pagination engine config struct
type Pagination struct {
	DefaultLimit      int    `json:"default_limit" yaml:"default_limit"`
	MaxLimit          int    `json:"max_limit" yaml:"max_limit"`
	MaxPage           int    `json:"max_page" yaml:"max_page"`
	DeepPageThreshold int    `json:"deep_page_threshold" yaml:"deep_page_threshold"`
	CursorVersion     int    `json:"cursor_version" yaml:"cursor_version"`
	UseEstimatedCount bool   `json:"use_estimated_count" yaml:"use_estimated_count"`
	IDField           string `json:"id_field" yaml:"id_field"`
}

// getPaginationConfig reads pagination engine configurations
func getPaginationConfig(v *viper.Viper) *Pagination {
	return &Pagination{
		DefaultLimit:      getIntOrDefault(v, "pagination.default_limit", 10),
		MaxLimit:          getIntOrDefault(v, "pagination.max_limit", 100),
		MaxPage:           getIntOrDefault(v, "pagination.max_page", 10000),
		DeepPageThreshold: getIntOrDefault(v, "pagination.deep_page_threshold", 100),
		CursorVersion:     getIntOrDefault(v, "pagination.cursor_version", 1),
		UseEstimatedCount: getBoolOrDefault(v, "pagination.use_estimated_count", false),
		IDField:           getStringOrDefault(v, "pagination.id_field", "_id"),
	}
}
