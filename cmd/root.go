// Package cmd implements the codewriter command line.
package cmd

import (
	"fmt"

	"github.com/fivemoreminix/codewriter/editor"
	"github.com/fivemoreminix/codewriter/internal/config"
	"github.com/fivemoreminix/codewriter/internal/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "codewriter [file]",
		Short:        "A terminal code editor with Python syntax highlighting",
		Long:         `A terminal code editor. Python source is highlighted as you type.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runEditor,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"config file (default: ~/.config/codewriter/config.yaml)")
	cmd.Flags().String("log-file", "",
		"append logs to this file")
	cmd.Flags().Bool("debug", false,
		"include debug records in the log")
	cmd.Flags().Bool("no-watch", false,
		"do not watch the open file for changes made outside of the editor")

	return cmd
}

// loadConfig reads the configuration, with flags taking precedence over the
// config file. When no config file exists yet, the defaults are written to
// ~/.config/codewriter/config.yaml.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	_ = v.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))
	_ = v.BindPFlag("log.debug", cmd.Flags().Lookup("debug"))

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	if used == "" && cfgFile == "" {
		if path, err := config.DefaultPath(); err == nil {
			// If write fails, just continue with defaults (no config file)
			_ = config.WriteDefault(path)
		}
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.WatchFiles = false
	}
	return cfg, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := log.Init(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "version", cmd.Root().Version)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini() // Useful for handling panics

	session := editor.NewSession(screen, cfg, logger)
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing session", "error", err)
		}
	}()

	if len(args) > 0 {
		session.OpenPath(args[0])
	}
	session.Run()

	logger.Info("exiting")
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
