package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game    `yaml:"game"`
	PlayerX  Player  `yaml:"player-x" env-prefix:"PLAYER_X_"`
	PlayerO  Player  `yaml:"player-o" env-prefix:"PLAYER_O_"`
	Redis    Redis   `yaml:"redis"`
	HTTP     HTTP    `yaml:"http"`
	Console  Console `yaml:"console"`
}

type Game struct {
	MaxAttempts   int           `yaml:"max-attempts" env-default:"3"`
	RetryBackoff  time.Duration `yaml:"retry-backoff" env-default:"1s"`
	MoveDelay     time.Duration `yaml:"move-delay" env-default:"500ms"`
	NotifyTimeout time.Duration `yaml:"notify-timeout" env-default:"2s"`
	Rounds        int           `yaml:"rounds" env:"ROUNDS" env-default:"1"`
}

// Player - describes what proposes moves for one side of the board.
// Kind is one of openai, ollama, random or first.
type Player struct {
	Kind        string        `yaml:"kind" env:"KIND" env-default:"ollama"`
	Label       string        `yaml:"label" env:"LABEL"`
	Model       string        `yaml:"model" env:"MODEL"`
	BaseURL     string        `yaml:"base-url" env:"BASE_URL"`
	APIKey      string        `yaml:"api-key" env:"API_KEY"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout" env-default:"60s"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env-default:"localhost"`
	Port        string        `yaml:"port" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env-default:"1h"`
}

type HTTP struct {
	Enabled bool   `yaml:"enabled" env:"HTTP_ENABLED" env-default:"false"`
	Port    string `yaml:"port" env-default:"9090"`
}

// Console - flags are opt-out; cleanenv cannot tell a false bool from an unset one.
type Console struct {
	Quiet   bool `yaml:"quiet" env:"CONSOLE_QUIET"`
	NoColor bool `yaml:"no-color" env:"NO_COLOR"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
