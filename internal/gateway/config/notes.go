package config

import "time"

// NotesConfig управляет доступом к API заметок.
type NotesConfig struct {
	WriteRequiresAuth bool `yaml:"write_requires_auth" env:"QUICKNOTE_NOTES_WRITE_REQUIRES_AUTH" env-default:"true"`
}

// LimiterConfig - ограничение частоты запросов к заметкам с одного IP.
type LimiterConfig struct {
	Enabled    bool          `yaml:"enabled" env:"QUICKNOTE_LIMITER_ENABLED" env-default:"true"`
	Max        int           `yaml:"max" env:"QUICKNOTE_LIMITER_MAX" env-default:"100"`
	Expiration time.Duration `yaml:"expiration" env:"QUICKNOTE_LIMITER_EXPIRATION" env-default:"1m"`
}
