package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	loaded = make(map[string]any)

	defaultEnvLoaded sync.Once
)

// Load populates the provided configuration struct from environment
// variables based on `env:` field tags. The first call attempts to load a
// .env file; its absence is not an error. Each configuration type is parsed
// once per process and cached, so repeated loads of the same type are cheap
// and always observe identical values.
//
// Example:
//
//	type ServerConfig struct {
//		Port int    `env:"PORT" envDefault:"8080"`
//		Env  string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional local tooling, missing is fine.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := typeNameOf[T]()

	mu.RLock()
	if cached, ok := loaded[typeName]; ok {
		*v = cached.(T)
		mu.RUnlock()
		return nil
	}
	mu.RUnlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	// Store a copy so callers cannot mutate the cached value.
	loaded[typeName] = *v
	mu.Unlock()

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Errorf("config: failed to load %s: %w", typeNameOf[T](), err))
	}
}

func typeNameOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
