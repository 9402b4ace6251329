package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/medassist/internal/logging"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg logging.Config
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestConfig_Validate(t *testing.T) {
	valid := logging.Config{Level: "debug", Format: "json"}
	assert.NoError(t, valid.Validate())

	badLevel := logging.Config{Level: "loud", Format: "json"}
	assert.Error(t, badLevel.Validate())

	badFormat := logging.Config{Level: "info", Format: "xml"}
	assert.Error(t, badFormat.Validate())
}

func TestNew(t *testing.T) {
	logger, err := logging.New(logging.Config{
		Level:  "debug",
		Format: "json",
		Fields: map[string]string{"service": "medassist"},
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Empty config falls back to defaults instead of failing.
	logger, err = logging.New(logging.Config{})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "nope"})
	assert.Error(t, err)
}
