// Package config holds server configuration loaded from a YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	RPC  RPCConfig  `yaml:"rpc"`
	DB   DBConfig   `yaml:"db"`
	Log  LogConfig  `yaml:"log"`
	Auth AuthConfig `yaml:"auth"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":3001"`
}

type RPCConfig struct {
	SocketPath string `yaml:"socket_path" env:"RPC_SOCKET" env-default:"/tmp/byteful.sock"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"byteful.db"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// AuthConfig carries the bootstrap credential. The defaults mirror the
// values the store ships with; this service is for trusted networks only.
type AuthConfig struct {
	BootstrapUsername string `yaml:"bootstrap_username" env:"BOOTSTRAP_USERNAME" env-default:"admin"`
	BootstrapPIN      string `yaml:"bootstrap_pin" env:"BOOTSTRAP_PIN" env-default:"1234"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from CONFIG_PATH
// (fallback "./config.yaml"); a missing default file means ENV-only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
