package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const EnvProd = "prod"

type Config struct {
	Env              string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer       HTTPServer `yaml:"http_server"`
	PostgreSQL       PostgreSQL `yaml:"postgresql"`
	SQLite           SQLite     `yaml:"sqlite"`
	Uploads          Uploads    `yaml:"uploads"`
	GoogleMapsAPIKey string     `yaml:"google_maps_api_key" env:"GOOGLE_MAPS_API_KEY"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"0.0.0.0:8080"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
}

// PostgreSQL is optional: an empty host means no networked database is
// configured and the embedded or in-memory backend is used instead.
type PostgreSQL struct {
	Host     string `yaml:"host" env:"PG_HOST"`
	Port     string `yaml:"port" env:"PG_PORT" env-default:"5432"`
	Username string `yaml:"username" env:"PG_USERNAME"`
	Password string `yaml:"password" env:"PG_PASSWORD"`
	Database string `yaml:"database" env:"PG_DATABASE"`
}

func (pc PostgreSQL) Configured() bool {
	return pc.Host != ""
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"sippsearcher.db"`
}

type Uploads struct {
	Dir string `yaml:"dir" env:"UPLOADS_DIR" env-default:"./public/uploads"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		// Every setting has a default or an env binding, so running
		// without a config file is supported.
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("config reading error: " + err.Error())
		}
		return &cfg
	}

	return MustLoadByPath(configPath)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("config reading error: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
