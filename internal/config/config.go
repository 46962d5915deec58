// Package config loads typed configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything the server needs from the environment. The struct
// tags drive parsing: `env` names the variable, `envDefault` fills gaps,
// and `required` makes startup fail loudly instead of limping along with
// an unusable secret.
//
// The CORS default covers local Vite dev servers; production sets
// CORS_ORIGINS to the deployed front-end origins (comma-separated).
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/desa.db"`

	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"72h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:5174"`

	DropboxAppKey       string `env:"DROPBOX_APP_KEY,required"`
	DropboxAppSecret    string `env:"DROPBOX_APP_SECRET,required"`
	DropboxRefreshToken string `env:"DROPBOX_REFRESH_TOKEN,required"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
