package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/config"
)

// Each test declares its own config type: loaded values are cached per type
// for the lifetime of the process.

func TestLoad_Defaults(t *testing.T) {
	type cfg struct {
		Port    int           `env:"LOADER_TEST_PORT" envDefault:"8080"`
		Timeout time.Duration `env:"LOADER_TEST_TIMEOUT" envDefault:"15m"`
	}

	var c cfg
	require.NoError(t, config.Load(&c))
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, 15*time.Minute, c.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	type cfg struct {
		Name string `env:"LOADER_TEST_NAME" envDefault:"fallback"`
	}

	t.Setenv("LOADER_TEST_NAME", "from-env")

	var c cfg
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "from-env", c.Name)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type cfg struct {
		Secret string `env:"LOADER_TEST_REQUIRED_SECRET,required"`
	}

	var c cfg
	err := config.Load(&c)
	require.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cfg struct {
		Value string `env:"LOADER_TEST_CACHED" envDefault:"initial"`
	}

	t.Setenv("LOADER_TEST_CACHED", "first")

	var a cfg
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	// A later env change does not reparse; every load of the type observes
	// the first result.
	t.Setenv("LOADER_TEST_CACHED", "second")

	var b cfg
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	type cfg struct {
		Port int `env:"LOADER_TEST_NIL_PORT" envDefault:"1"`
	}

	var p *cfg
	require.ErrorIs(t, config.Load(p), config.ErrNilPointer)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type cfg struct {
		Secret string `env:"LOADER_TEST_MUST_SECRET,required"`
	}

	assert.Panics(t, func() {
		var c cfg
		config.MustLoad(&c)
	})
}
