package config

import (
	"fmt"
	"net/url"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"QUICKNOTE_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"QUICKNOTE_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"QUICKNOTE_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"QUICKNOTE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"QUICKNOTE_POSTGRES_DB" env-default:"quicknote"`
	SSLMode  string `yaml:"ssl_mode" env:"QUICKNOTE_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"QUICKNOTE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"QUICKNOTE_POSTGRES_MAX_CONN" env-default:"10"`
	// AutoMigrate применяет миграции при старте сервера.
	AutoMigrate bool `yaml:"auto_migrate" env:"QUICKNOTE_POSTGRES_AUTO_MIGRATE" env-default:"true"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
