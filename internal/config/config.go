package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Parser    ParserConfig    `yaml:"parser"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	// Mode is "http" (REST API plus streamable MCP) or "stdio" (MCP only).
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path optionally sends logs to a size-capped file.
	Path string `yaml:"path"`
}

// AuthConfig controls the password gate in front of the tools.
type AuthConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Password string `yaml:"password"`
}

type ParserConfig struct {
	RangeExpansion bool `yaml:"range_expansion"`
	MaxRangeSpan   int  `yaml:"max_range_span"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		DB: DBConfig{
			Path: ":memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TYPESET_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TYPESET_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TYPESET_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TYPESET_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("TYPESET_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("TYPESET_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TYPESET_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("TYPESET_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if enabled := os.Getenv("TYPESET_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TYPESET_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if password := os.Getenv("TYPESET_AUTH_PASSWORD"); password != "" {
		cfg.Auth.Password = password
	}
	if ranges := os.Getenv("TYPESET_PARSER_RANGE_EXPANSION"); ranges != "" {
		v, err := strconv.ParseBool(ranges)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TYPESET_PARSER_RANGE_EXPANSION: %w", err)
		}
		cfg.Parser.RangeExpansion = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q: want http or stdio", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.Password == "" {
		return fmt.Errorf("auth enabled without a password")
	}
	if c.Parser.MaxRangeSpan < 0 {
		return fmt.Errorf("invalid parser max_range_span %d", c.Parser.MaxRangeSpan)
	}
	return nil
}

// GatePassword is the password the gate checks, empty when the gate is off.
func (c Config) GatePassword() string {
	if !c.Auth.Enabled {
		return ""
	}
	return c.Auth.Password
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
