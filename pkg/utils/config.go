package utils

import (
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Addr         string
	TrustedProxy string
}

// LoadServerConfig reads server settings from the environment. A .env
// file in the working directory is loaded first when present; a missing
// file is not an error.
func LoadServerConfig() ServerConfig {
	_ = godotenv.Load()

	addr := os.Getenv("SCENTHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	proxy := os.Getenv("SCENTHUB_TRUSTED_PROXY")
	if proxy == "" {
		proxy = "127.0.0.1"
	}

	return ServerConfig{
		Addr:         addr,
		TrustedProxy: proxy,
	}
}
