package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"QUICKNOTE_JWT_SECRET_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"QUICKNOTE_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"QUICKNOTE_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	BCryptCost      int           `yaml:"bcrypt_cost" env:"QUICKNOTE_BCRYPT_COST" env-default:"10"`
}

// GoogleConfig содержит настройки Google Sign-In.
type GoogleConfig struct {
	ClientID string `yaml:"client_id" env:"QUICKNOTE_GOOGLE_CLIENT_ID" env-default:""`
}
