package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/model-tools/inferd-entry/pkg/errors"
)

func validTestConfig() *Config {
	return Default()
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validTestConfig()))
}

func TestValidate_NilConfig(t *testing.T) {
	err := Validate(nil)

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty storage root", func(c *Config) { c.StorageRoot = "" }},
		{"empty bind address", func(c *Config) { c.BindAddress = "" }},
		{"bind address without port", func(c *Config) { c.BindAddress = "localhost" }},
		{"empty server executable", func(c *Config) { c.ServerBin = "" }},
		{"zero ready attempts", func(c *Config) { c.ReadyAttempts = 0 }},
		{"negative ready attempts", func(c *Config) { c.ReadyAttempts = -1 }},
		{"zero ready interval", func(c *Config) { c.ReadyInterval = 0 }},
		{"zero probe timeout", func(c *Config) { c.ProbeTimeout = 0 }},
		{"zero grace period", func(c *Config) { c.GracePeriod = 0 }},
		{"sync models without healthchecker", func(c *Config) {
			c.SyncModels = []string{"vendor/name"}
			c.CompanionBin = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := Validate(cfg)

			assert.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestValidate_EmptyHostIsAllowed(t *testing.T) {
	cfg := validTestConfig()
	cfg.BindAddress = ":11434"

	assert.NoError(t, Validate(cfg))
}
