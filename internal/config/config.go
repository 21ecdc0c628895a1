package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret        string `yaml:"secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		AccessTTLMin  int    `yaml:"access_ttl_minutes"`
		RefreshTTLDay int    `yaml:"refresh_ttl_days"`
	} `yaml:"jwt"`

	Verify struct {
		Provider   string `yaml:"provider"` // twilio, mock
		AccountSID string `yaml:"account_sid"`
		AuthToken  string `yaml:"auth_token"`
		ServiceSID string `yaml:"service_sid"`
	} `yaml:"verify"`

	Push struct {
		Provider string `yaml:"provider"` // expo, noop
		Endpoint string `yaml:"endpoint"` // override for tests
	} `yaml:"push"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config from environment
// variables when DATABASE_URL is set (test and container deployments).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.RefreshSecret = os.Getenv("REFRESH_SECRET")

	cfg.Verify.Provider = os.Getenv("VERIFY_PROVIDER")
	cfg.Verify.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Verify.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Verify.ServiceSID = os.Getenv("TWILIO_VERIFY_SERVICE_SID")

	cfg.Push.Provider = os.Getenv("PUSH_PROVIDER")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "secret"
	}
	if cfg.JWT.RefreshSecret == "" {
		cfg.JWT.RefreshSecret = "refreshSecret"
	}
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 15
	}
	if cfg.JWT.RefreshTTLDay == 0 {
		cfg.JWT.RefreshTTLDay = 7
	}
	if cfg.Verify.Provider == "" {
		cfg.Verify.Provider = "mock"
	}
	if cfg.Push.Provider == "" {
		cfg.Push.Provider = "noop"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
