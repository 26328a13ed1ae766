package config

import (
	"log"

	"github.com/spf13/viper"
)

const (
	// DefaultJWTExpiryMinutes is the token lifetime used when no expiry is
	// configured.
	DefaultJWTExpiryMinutes = 60

	DefaultJWTIssuer   = "HexagonalAPI"
	DefaultJWTAudience = "HexagonalAPIUsers"
)

type Config struct {
	Server ServerConfig
	JWT    JWTConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type JWTConfig struct {
	// Secret signs tokens. There is no default; the token issuer refuses
	// to construct without it.
	Secret        string
	Issuer        string
	Audience      string
	ExpiryMinutes int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("JWT_ISSUER", DefaultJWTIssuer)
	viper.SetDefault("JWT_AUDIENCE", DefaultJWTAudience)
	viper.SetDefault("JWT_EXPIRY_MINUTES", DefaultJWTExpiryMinutes)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			Issuer:        viper.GetString("JWT_ISSUER"),
			Audience:      viper.GetString("JWT_AUDIENCE"),
			ExpiryMinutes: viper.GetInt("JWT_EXPIRY_MINUTES"),
		},
	}
}
