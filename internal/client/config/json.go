package config

import (
	"encoding/json"
	"os"

	"github.com/hoaxify/hoaxify-cli/internal/flagx"
	"github.com/hoaxify/hoaxify-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so the file can say "10s" instead of nanoseconds.
// Zero-valued fields leave the corresponding Config value untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	SessionDBPath  string         `json:"session_db_path"`
	UserPageSize   int            `json:"user_page_size"`
	HoaxPageSize   int            `json:"hoax_page_size"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named
// by -c/-config. No file flag means no JSON stage. Read or unmarshal
// errors panic; config is resolved once at startup and a broken file
// should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.UserPageSize > 0 {
		cfg.UserPageSize = jc.UserPageSize
	}
	if jc.HoaxPageSize > 0 {
		cfg.HoaxPageSize = jc.HoaxPageSize
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
