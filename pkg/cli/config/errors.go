package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrMissingName    = goerr.New("name is required")
	ErrInvalidTaxID   = goerr.New("tax ID must be 11 digits")
	ErrMissingSetting = goerr.New("required setting is missing")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	SettingKey    = "setting"
	ValueKey      = "value"
)
