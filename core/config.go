package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all deployment-time settings of the client.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	AppName  string
	Build    string

	// BaseURL is the attendance server's base URL; supplied externally,
	// the client never guesses it in non-DEV environments.
	BaseURL        string
	RequestTimeout time.Duration

	// DataDir holds the non-secret local state (installation id, saved QR
	// images). Secrets never land here unless TokenStore is "file", in
	// which case they are sealed first.
	DataDir    string
	TokenStore string // "keyring" | "file"

	RollbarToken string
}

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and the environment (prefixed with <ENV>_).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Hudhura")
	conf.SetDefault("baseURL", "http://localhost:8000/api/")
	conf.SetDefault("requestTimeout", 15*time.Second)
	conf.SetDefault("tokenStore", "keyring")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	dataDir := conf.GetString("dataDir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("config.os.UserHomeDir: %v", err)
		}
		dataDir = filepath.Join(home, ".hudhura")
	}

	return &Config{
		Debug:          conf.GetBool("debug"),
		TestMode:       conf.GetBool("testMode"),
		Env:            env,
		AppName:        conf.GetString("appName"),
		Build:          conf.GetString("build"),
		BaseURL:        strings.TrimRight(conf.GetString("baseURL"), "/") + "/",
		RequestTimeout: conf.GetDuration("requestTimeout"),
		DataDir:        dataDir,
		TokenStore:     conf.GetString("tokenStore"),
		RollbarToken:   conf.GetString("rollbarToken"),
	}
}
