package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"smartx/internal/store"
)

type Config struct {
	Env           string `env:"APP_ENV" env-default:"development"`
	Port          string `env:"PORT" env-default:"8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	TemplatesDir  string `env:"TEMPLATES_DIR" env-default:"./web/templates"`
	LogFile       string `env:"LOG_FILE"`

	// file | sqlite | redis | postgres | memory
	DurableMedium string `env:"DURABLE_MEDIUM" env-default:"file"`
	DataDir       string `env:"DATA_DIR" env-default:"./data"`
	SQLiteDSN     string `env:"SQLITE_DSN" env-default:"./data/smartx.db"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisKey      string `env:"REDIS_KEY" env-default:"smartx:snapshot"`
	PostgresDSN   string `env:"POSTGRES_DSN" env-default:"host=localhost user=postgres password=postgres dbname=smartx port=5432 sslmode=disable"`
}

// Load reads the environment, after pulling in .env.local when APP_ENV is
// "local".
func Load() Config {
	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(".env.local"); err != nil {
			log.Printf("[config] .env.local not loaded: %v", err)
		}
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("[config] failed to read environment: %v", err)
	}
	log.Printf("[config] APP_ENV=%s PORT=%s DURABLE_MEDIUM=%s DATA_DIR=%s LOG_FILE=%s",
		cfg.Env, cfg.Port, cfg.DurableMedium, cfg.DataDir, cfg.LogFile)
	return cfg
}

func (c Config) Medium() store.MediumConfig {
	return store.MediumConfig{
		Kind:          c.DurableMedium,
		DataDir:       c.DataDir,
		SQLiteDSN:     c.SQLiteDSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisKey:      c.RedisKey,
		PostgresDSN:   c.PostgresDSN,
	}
}
