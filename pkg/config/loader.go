package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per config type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	envFileOnce sync.Once
)

// LoadEnv reads the given .env files, or ./.env when none are given, into the
// process environment. Variables already set are not overridden.
// Load calls it implicitly for ./.env, ignoring a missing file.
func LoadEnv(paths ...string) error {
	var err error
	// Explicit files replace the implicit ./.env read done by Load.
	envFileOnce.Do(func() {})
	if len(paths) == 0 {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(paths...)
	}
	if err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

// MustLoadEnv panics when LoadEnv fails.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// Load parses environment variables into v using env struct tags. Each type
// is parsed once; later calls copy the cached value.
//
//	type StoreConfig struct {
//	    URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	envFileOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", key, err))
	}
	loaded.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad panics when Load fails. Use it for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached config so the next Load parses the environment again.
func Reset() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	clear(loaded.values)
}
