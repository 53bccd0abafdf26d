package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "github.com/git-webzoom/assistente-x-hub/internal/util/env"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	WebhookSignatureSchemeSha256Concat = "sha256-concat"
	WebhookSignatureSchemeHmacSha256   = "hmac-sha256"
)

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN" required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"     required:"true"`
	BackendRootPath string
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	// webhooks
	// sha256-concat keeps signatures bit-compatible with consumers integrated
	// against the legacy gateway; hmac-sha256 is the recommended scheme for
	// new deployments.
	WebhookSignatureScheme string `env:"WEBHOOK_SIGNATURE_SCHEME" env-default:"sha256-concat"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	if env.WebhookSignatureScheme != WebhookSignatureSchemeSha256Concat &&
		env.WebhookSignatureScheme != WebhookSignatureSchemeHmacSha256 {
		log.Error("WEBHOOK_SIGNATURE_SCHEME is invalid", "scheme", env.WebhookSignatureScheme)
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}
