package config

import (
	"fmt"
	"net"

	"github.com/model-tools/inferd-entry/pkg/errors"
)

// Validate checks the configuration snapshot before the supervisor starts.
func Validate(config *Config) error {
	if config == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}

	if config.StorageRoot == "" {
		return errors.NewValidationError("storage root cannot be empty", nil)
	}

	if err := validateBindAddress(config.BindAddress); err != nil {
		return err
	}

	if config.ServerBin == "" {
		return errors.NewValidationError("server executable cannot be empty", nil)
	}

	if len(config.SyncModels) > 0 && config.CompanionBin == "" {
		return errors.NewValidationError("healthchecker executable cannot be empty when sync models are configured", nil)
	}

	if config.ReadyAttempts <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("ready attempts must be positive, got %d", config.ReadyAttempts), nil)
	}

	if config.ReadyInterval <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("ready interval must be positive, got %v", config.ReadyInterval), nil)
	}

	if config.ProbeTimeout <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("probe timeout must be positive, got %v", config.ProbeTimeout), nil)
	}

	if config.GracePeriod <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("grace period must be positive, got %v", config.GracePeriod), nil)
	}

	return nil
}

func validateBindAddress(address string) error {
	if address == "" {
		return errors.NewValidationError("bind address cannot be empty", nil)
	}

	// An empty host means all interfaces, so only the port is checked.
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return errors.NewValidationError("bind address must be host:port", err).WithContext("bind_address", address)
	}

	if port == "" {
		return errors.NewValidationError("bind address port cannot be empty", nil).WithContext("bind_address", address)
	}

	return nil
}
