// Major/minor axis demo: background subtraction and moment-based orientation
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"major-minor-axis/internal/config"
)

const (
	AppName    = "axisdemo"
	AppID      = "com.github.major-minor-axis"
	AppVersion = "1.0.0"
)

type options struct {
	configPath string
	debug      bool
	backend    string

	cfg    *config.Config
	logger *logrus.Logger
}

func main() {
	opts := &options{}
	root := newRootCommand(opts)

	if err := root.Execute(); err != nil {
		if opts.logger != nil {
			opts.logger.WithError(err).Error("Command failed")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           AppName,
		Short:         "Segment an object against its background and show its major and minor axes",
		Version:       AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug mode with verbose logging")
	flags.StringVar(&opts.backend, "backend", config.BackendNative, "image backend: native or opencv")

	root.AddCommand(
		newGUICommand(opts),
		newAnalyzeCommand(opts),
		newRenderCommand(opts),
	)
	return root
}

// setup loads the config, applies flag overrides and creates the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("backend") {
		cfg.Backend = o.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	o.cfg = cfg
	o.logger = initLogger(cfg.Debug)
	o.logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"backend":    cfg.Backend,
		"command":    cmd.Name(),
	}).Info("Starting " + AppName)
	return nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
