package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fitkit/pkg/config"
)

type testConfig struct {
	Name  string `env:"FITKIT_TEST_NAME" envDefault:"fitkit"`
	Count int    `env:"FITKIT_TEST_COUNT" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"FITKIT_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "fitkit", cfg.Name)
		assert.Equal(t, 3, cfg.Count)
	})

	t.Run("env overrides default", func(t *testing.T) {
		t.Setenv("FITKIT_TEST_NAME", "override")

		// A fresh type is needed because Load caches per type; reuse of
		// testConfig would return the copy cached above.
		type overrideConfig struct {
			Name string `env:"FITKIT_TEST_NAME" envDefault:"fitkit"`
		}
		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "override", cfg.Name)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("cached between calls", func(t *testing.T) {
		var first, second testConfig
		require.NoError(t, config.Load(&first))
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})
}
