package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/PolarWolf314/envc/internal/configs"
	logger "github.com/PolarWolf314/envc/internal/logging"
	"github.com/PolarWolf314/envc/internal/setenv"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/PolarWolf314/envc/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// skipConfigAnnotation marks commands that must run even when the config
// file is invalid.
const skipConfigAnnotation = "envc/skip-config"

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// Config is the effective configuration, loaded before every command.
	Config = configs.DefaultConfig()

	appFs         afero.Fs = afero.NewOsFs()
	isInteractive          = utils.IsInteractive

	RootCmd = &cobra.Command{
		Use:   "envc",
		Short: "Encrypt and decrypt the values of .env files",
		Long: ui.Banner("envc") + `

Encrypts the values of .env files with a password, keeping keys, comments
and layout readable, so the encrypted file can be committed.

Examples:
  # Pick files interactively
  envc encrypt

  # Encrypt a file in one line
  envc encrypt .env -p "$PASSWORD"

  # Decrypt every encrypted file under services/
  envc decrypt 'services/**/.env*.enc' --yes

  # Show which files are encrypted
  envc status`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}

			path := effectiveConfigPath()
			Logger.Debugf("Loading config from %s", path)
			cfg, err := configs.LoadConfig(path)
			if err != nil {
				return err
			}
			Config = cfg
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(setenvCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command. An interrupt cancels the running batch.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return RootCmd.ExecuteContext(ctx)
}

func effectiveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configs.EnvcSettings.ConfigPath
}

// auditPath returns the audit log path, or "" when auditing is disabled.
func auditPath() string {
	if !Config.Audit.Enabled {
		return ""
	}
	return Config.AuditPath(configs.EnvcSettings.AuditPath)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	Logger = logger.Logger{}
	Config = configs.DefaultConfig()
	appFs = afero.NewOsFs()
	isInteractive = utils.IsInteractive
	newSetter = setenv.DefaultSetter
	resetPrompts()
	resetCommandFlags()
}

// resetCommandFlags resets every flag variable so values from one run do
// not leak into the next.
func resetCommandFlags() {
	verbose = false
	debug = false
	configPath = ""

	encryptFlags.reset()
	decryptFlags.reset()
	resetStatusCommandState()
	resetSetenvCommandState()
	resetLogCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed bit of every flag so one test's
// flags do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
