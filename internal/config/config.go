package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Storage  string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis    Redis  `yaml:"redis"`
	Ollama   Ollama `yaml:"ollama"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Ollama struct {
	BaseURL     string        `yaml:"base-url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
	Models      []string      `yaml:"models" env:"OLLAMA_MODELS" env-default:"phi3:mini,phi,tinyllama,llama3.2:1b"`
	WordTimeout time.Duration `yaml:"word-timeout" env:"OLLAMA_WORD_TIMEOUT" env-default:"5s"`
	HintTimeout time.Duration `yaml:"hint-timeout" env:"OLLAMA_HINT_TIMEOUT" env-default:"8s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
