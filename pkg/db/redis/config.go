// Package redis предоставляет подключение к Redis.
package redis

import (
	"net"
	"strconv"
	"time"
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdle         int
	IdleTimeout     time.Duration
	MaxConnLifetime time.Duration
}

// Addr возвращает адрес в формате host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
