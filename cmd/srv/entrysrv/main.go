package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/model-tools/inferd-entry/pkg/config"
	"github.com/model-tools/inferd-entry/pkg/logging"
	"github.com/model-tools/inferd-entry/pkg/supervisor"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	ConfigFile    string `long:"config" description:"optional YAML configuration file"`
	ModelsDir     string `long:"models-dir" env:"INFERD_MODELS" description:"root directory of the local model cache"`
	Host          string `long:"host" env:"INFERD_HOST" description:"server bind address (host:port)"`
	ModelsList    string `long:"models-list" env:"INFERD_MODELS_LIST" description:"comma-delimited models for the healthchecker to keep in sync"`
	ServerBin     string `long:"server-bin" env:"INFERD_SERVER_BIN" description:"inferd server executable"`
	CompanionBin  string `long:"healthchecker-bin" env:"INFERD_HEALTHCHECKER_BIN" description:"inferd-healthchecker executable"`
	ReadyAttempts int    `long:"ready-attempts" env:"INFERD_READY_ATTEMPTS" description:"maximum readiness probe attempts"`
	ReadyInterval int    `long:"ready-interval" env:"INFERD_READY_INTERVAL" description:"seconds between readiness probe attempts"`
	ReadyStrict   bool   `long:"ready-strict" env:"INFERD_READY_STRICT" description:"do not start the healthchecker unless the server probed healthy"`
	RunDir        string `long:"run-dir" env:"INFERD_RUN_DIR" description:"directory for PID files (disabled if empty)"`
	LogLevel      string `long:"log-level" env:"INFERD_LOG_LEVEL" description:"log level: debug, info, warn, error"`
}

func buildConfig(opts flagOptions) (*config.Config, error) {
	cfg := config.Default()

	if opts.ConfigFile != "" {
		loaded, err := config.LoadFromFile(opts.ConfigFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags and environment override the file.
	if opts.ModelsDir != "" {
		cfg.StorageRoot = opts.ModelsDir
	}
	if opts.Host != "" {
		cfg.BindAddress = opts.Host
	}
	if opts.ModelsList != "" {
		cfg.SyncModels = config.SplitModelsList(opts.ModelsList)
	}
	if opts.ServerBin != "" {
		cfg.ServerBin = opts.ServerBin
	}
	if opts.CompanionBin != "" {
		cfg.CompanionBin = opts.CompanionBin
	}
	if opts.ReadyAttempts != 0 {
		cfg.ReadyAttempts = opts.ReadyAttempts
	}
	if opts.ReadyInterval != 0 {
		cfg.ReadyInterval = time.Duration(opts.ReadyInterval) * time.Second
	}
	if opts.ReadyStrict {
		cfg.StrictReadinessGate = true
	}
	if opts.RunDir != "" {
		cfg.RunDirectory = opts.RunDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var opts flagOptions
	parser := flags.NewParser(&opts, flags.HelpFlag)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		fmt.Printf("Command line flags parsing failed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		fmt.Printf("Configuration failed: %v\n", err)
		os.Exit(1)
	}

	logFuncs, flush, err := logging.NewZapFuncs(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	logger := logging.NewLogger("inferd-entry: ", logFuncs)
	logger.Infof("Starting, storage root: %s, bind address: %s, sync models: %d",
		cfg.StorageRoot, cfg.BindAddress, len(cfg.SyncModels))

	sup := supervisor.New(cfg, logger)
	code := sup.Run(context.Background())

	logger.Infof("Exiting, code: %d", code)
	flush()
	os.Exit(code)
}
