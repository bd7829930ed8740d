package config

import "fmt"

// ConfigError reports a config file that is missing, unreadable or malformed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SaveError reports a failure writing the config file back to disk.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving config %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
