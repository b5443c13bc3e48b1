package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the environment-driven configuration of the API process.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	SnapshotPath    string        `envconfig:"SNAPSHOT_PATH" default:""`
	SeedDemoData    bool          `envconfig:"SEED_DEMO_DATA" default:"true"`
	VenueName       string        `envconfig:"VENUE_NAME" default:"Grand Screen"`
	VenueAddress    string        `envconfig:"VENUE_ADDRESS" default:"1 Main Street"`
	VenueHalls      int           `envconfig:"VENUE_HALLS" default:"3"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
