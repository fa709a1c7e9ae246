package config

import "os"

type Config struct {
	Server     ServerConfig
	CommentAPI CommentAPIConfig
	Auth       AuthConfig
	Cache      CacheConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port             string
	AllowedOrigins   string
	AllowCredentials string
}

type CommentAPIConfig struct {
	BaseURL string
}

type AuthConfig struct {
	// OIDCIssuer enables bearer verification at the edge when set.
	OIDCIssuer   string
	OIDCClientID string

	// Gateway-held session against the external auth server.
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       string
	ListTTL       string
}

type LogConfig struct {
	Level string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:             getenv("PORT", "8080"),
			AllowedOrigins:   os.Getenv("ALLOWED_ORIGINS"),
			AllowCredentials: getenv("ALLOW_CREDENTIALS", "false"),
		},
		CommentAPI: CommentAPIConfig{
			BaseURL: getenv("COMMENT_API_URL", "http://localhost:9000"),
		},
		Auth: AuthConfig{
			OIDCIssuer:   os.Getenv("OIDC_ISSUER"),
			OIDCClientID: os.Getenv("OIDC_CLIENT_ID"),
			TokenURL:     os.Getenv("AUTH_TOKEN_URL"),
			ClientID:     os.Getenv("AUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("AUTH_CLIENT_SECRET"),
			RefreshToken: os.Getenv("AUTH_REFRESH_TOKEN"),
		},
		Cache: CacheConfig{
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getenv("REDIS_DB", "0"),
			ListTTL:       getenv("LIST_CACHE_TTL", "30s"),
		},
		Log: LogConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
