// Package config loads typed configuration from the process environment,
// optionally seeded from a .env or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

var (
	envFilePath string
	envMu       sync.RWMutex
)

// Validator is implemented by config structs that check themselves after loading.
type Validator interface {
	Validate() error
}

// SetEnvFile selects the file New loads before reading the environment.
// An empty path restores the default of ./.env when present.
func SetEnvFile(path string) {
	envMu.Lock()
	defer envMu.Unlock()
	envFilePath = strings.TrimSpace(path)
}

func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

func New[T any](prefix string) (*T, error) {
	envMu.RLock()
	path := envFilePath
	envMu.RUnlock()

	if path != "" {
		return NewFromFile[T](path, prefix)
	}
	if err := exportEnvironmentIfExists(defaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}
	return process[T](prefix)
}

// NewFromFile exports the settings in path to the environment and then loads T.
func NewFromFile[T any](path, prefix string) (*T, error) {
	if err := exportEnvironment(path); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return process[T](prefix)
}

func process[T any](prefix string) (*T, error) {
	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	if v, ok := any(&conf).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

func exportEnvironmentIfExists(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(filepath)
}

// exportEnvironment sets one variable per leaf key. Nested YAML keys are
// joined with "_", so openrouter.api_key becomes OPENROUTER_API_KEY.
func exportEnvironment(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	if strings.HasSuffix(filepath, ".env") {
		v.SetConfigType("env")
	}
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, k := range v.AllKeys() {
		name := strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
		if err := os.Setenv(name, envValue(v.Get(k))); err != nil {
			return err
		}
	}

	return nil
}

func envValue(val any) string {
	if items, ok := val.([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(val)
}
