package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option adjusts how environment variables are read into a struct.
type Option func(*env.Options)

// WithPrefix reads every variable with prefix prepended to its name.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) { o.Prefix = prefix }
}

// WithEnviron reads from vars instead of the process environment.
func WithEnviron(vars map[string]string) Option {
	return func(o *env.Options) { o.Environment = vars }
}

// WithRequired makes every field without a default mandatory.
func WithRequired() Option {
	return func(o *env.Options) { o.RequiredIfNoDef = true }
}

type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	dotenvOnce sync.Once
)

// LoadEnvFiles loads the given .env files, or ".env" when none are given,
// into the process environment. Variables already set are not overridden.
// A missing default .env file is not an error.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrParsingConfig, err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Parse fills v from the environment without caching.
func Parse[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	if err := env.ParseWithOptions(v, o); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Load fills v from the process environment, reading .env on first use.
// Each struct type is parsed once; later calls get a copy of the first result.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = LoadEnvFiles() })

	typ := reflect.TypeFor[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	if cached, ok := loaded.values[typ]; ok {
		*v = cached.(T)
		return nil
	}
	var fresh T
	if err := Parse(&fresh); err != nil {
		return err
	}
	loaded.values[typ] = fresh
	*v = fresh
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration. Tests use it between cases.
func Reset() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	clear(loaded.values)
}
