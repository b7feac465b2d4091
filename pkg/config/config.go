package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/model-tools/inferd-entry/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStorageRoot   = "/home/inferd/.inferd/models"
	DefaultBindAddress   = "0.0.0.0:11434"
	DefaultServerBin     = "inferd"
	DefaultCompanionBin  = "inferd-healthchecker"
	DefaultReadyAttempts = 30
	DefaultReadyInterval = 1 * time.Second
	DefaultProbeTimeout  = 2 * time.Second
	DefaultGracePeriod   = 10 * time.Second

	// ReadinessPath is the readiness probe path exposed by the inferd server.
	ReadinessPath = "/api/health"
)

// Config is the immutable snapshot of supervisor inputs. It is built once at
// startup and passed by reference to the supervisor components.
type Config struct {
	// StorageRoot is the root directory of the local model cache.
	StorageRoot string `yaml:"storage_root"`

	// BindAddress is the host:port the inferd server listens on.
	BindAddress string `yaml:"bind_address"`

	// SyncModels is the ordered list of model identifiers the healthchecker
	// companion keeps in sync. Empty means no companion is launched.
	SyncModels []string `yaml:"sync_models,omitempty"`

	// ServerBin and ServerArgs describe the server child process.
	ServerBin  string   `yaml:"server_bin"`
	ServerArgs []string `yaml:"server_args,omitempty"`

	// CompanionBin is the healthchecker executable.
	CompanionBin string `yaml:"healthchecker_bin"`

	// ReadyAttempts and ReadyInterval bound the readiness probe loop.
	ReadyAttempts int           `yaml:"ready_attempts"`
	ReadyInterval time.Duration `yaml:"ready_interval"`

	// ProbeTimeout is the per-request timeout of a single readiness check.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// StrictReadinessGate withholds the healthchecker when the readiness
	// probe timed out. The historical behavior is to launch it regardless.
	StrictReadinessGate bool `yaml:"strict_readiness_gate,omitempty"`

	// GracePeriod bounds the wait for children to exit after termination
	// has been requested during shutdown.
	GracePeriod time.Duration `yaml:"grace_period"`

	// RunDirectory enables PID file generation when set.
	RunDirectory string `yaml:"run_directory,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns a Config populated with the container image defaults.
func Default() *Config {
	return &Config{
		StorageRoot:   DefaultStorageRoot,
		BindAddress:   DefaultBindAddress,
		ServerBin:     DefaultServerBin,
		ServerArgs:    []string{"serve"},
		CompanionBin:  DefaultCompanionBin,
		ReadyAttempts: DefaultReadyAttempts,
		ReadyInterval: DefaultReadyInterval,
		ProbeTimeout:  DefaultProbeTimeout,
		GracePeriod:   DefaultGracePeriod,
		LogLevel:      "info",
	}
}

// LoadFromFile overlays a YAML configuration file onto base. Fields absent
// from the file keep their base values.
func LoadFromFile(filename string, base *Config) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("filename", filename)
	}

	config := *base
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewValidationError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	return &config, nil
}

// SplitModelsList parses a comma-delimited model list, dropping empty and
// whitespace-only entries while preserving order.
func SplitModelsList(list string) []string {
	if list == "" {
		return nil
	}
	var models []string
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			models = append(models, entry)
		}
	}
	return models
}

// ServerURL returns the base URL the supervisor and the companion use to
// reach the server. Wildcard bind hosts are rewritten to loopback since both
// run next to the server.
func (c *Config) ServerURL() string {
	host, port, err := net.SplitHostPort(c.BindAddress)
	if err != nil {
		return "http://" + c.BindAddress
	}
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, port))
}

// ReadinessURL returns the full readiness probe URL.
func (c *Config) ReadinessURL() string {
	return c.ServerURL() + ReadinessPath
}
