package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MH0386/doctainr/internal/config"
	"github.com/MH0386/doctainr/internal/docker"
	"github.com/MH0386/doctainr/internal/logger"
	"github.com/MH0386/doctainr/internal/state"
	"github.com/MH0386/doctainr/internal/tui"
)

func main() {
	var (
		hostFlag     string
		logLevelFlag string
	)

	root := &cobra.Command{
		Use:           "doctainr",
		Short:         "Doctainr — a terminal dashboard for your local Docker engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(hostFlag, logLevelFlag)
		},
	}
	root.Flags().StringVar(&hostFlag, "host", "", "Docker daemon endpoint (overrides config)")
	root.Flags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(hostFlag, logLevelFlag string) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if hostFlag != "" {
		cfg.DockerHost = hostFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	logger.SetLevel(cfg.Log.Level)
	if err := logger.SetFile(cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// A missing daemon must not block startup; the dashboard comes up and
	// every operation reports the unavailability instead.
	var client docker.Client
	if service, err := docker.NewService(cfg.DockerHost); err != nil {
		logger.WithError(err).Error("docker connection failed")
		fmt.Fprintf(os.Stderr, "Warning: failed to connect to Docker: %v\n", err)
	} else {
		client = service
		defer service.Close()
	}

	app := state.New(client, cfg.DockerHost)
	logger.WithField("host", cfg.DockerHost).Info("doctainr starting")
	return tui.Run(app, cfg, cfgPath)
}
