// Package config loads and validates loom.toml, the project manifest
// every generated project carries at its root. The manifest doubles as
// the project-root marker: commands that need a project walk up from
// the working directory until they find one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// File is the manifest filename at the project root.
const File = "loom.toml"

// Project is the parsed loom.toml.
type Project struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version" validate:"required"`
	Description string `mapstructure:"description"`

	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Server   ServerConfig   `mapstructure:"server"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

// PipelineConfig holds defaults applied to generated pipelines.
type PipelineConfig struct {
	ErrorStrategy string `mapstructure:"error_strategy" validate:"omitempty,oneof=halt continue retry"`
}

// ServerConfig holds development server defaults.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Env  string `mapstructure:"env" validate:"omitempty,oneof=dev prod test"`
}

// MCPConfig is the optional [mcp] section appended by the llm generator.
type MCPConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Transport string `mapstructure:"transport" validate:"omitempty,oneof=stdio sse"`
}

var validate = validator.New()

// ErrNotAProject is returned when no loom.toml is found walking up from
// the starting directory.
var ErrNotAProject = errors.New("not inside a loom project (no loom.toml found)")

// FindProjectRoot walks up from dir looking for loom.toml and returns
// the directory containing it.
func FindProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, File)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotAProject
		}
		abs = parent
	}
}

// Load reads and validates the manifest at the project root. A .env
// file next to it, if present, is loaded into the process environment
// first so LOOM_* variables can override manifest values.
func Load(root string) (*Project, error) {
	envFile := filepath.Join(root, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(root, File))
	v.SetConfigType("toml")
	v.SetEnvPrefix("LOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", "0.1.0")
	v.SetDefault("pipeline.error_strategy", "halt")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "dev")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", File, err)
	}

	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", File, err)
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", File, err)
	}
	return &p, nil
}

// LoadFromCwd resolves the project root from the working directory and
// loads its manifest.
func LoadFromCwd() (*Project, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	root, err := FindProjectRoot(cwd)
	if err != nil {
		return nil, "", err
	}
	p, err := Load(root)
	if err != nil {
		return nil, "", err
	}
	return p, root, nil
}

// AppendMCPSection appends the [mcp] section to loom.toml once. The
// llm generator calls this; a manifest that already has the section is
// left untouched.
func AppendMCPSection(root string) error {
	path := filepath.Join(root, File)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", File, err)
	}
	if strings.Contains(string(data), "[mcp]") {
		return nil
	}

	section := "\n[mcp]\nenabled = true\ntransport = \"stdio\"\n"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", File, err)
	}
	defer f.Close()
	if _, err := f.WriteString(section); err != nil {
		return fmt.Errorf("appending to %s: %w", File, err)
	}
	return nil
}
