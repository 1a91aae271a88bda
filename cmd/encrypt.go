package cmd

import (
	"github.com/PolarWolf314/envc/internal/engine"
	"github.com/spf13/cobra"
)

func init() {
	encryptFlags.register(encryptCmd.Flags(), engine.ModeEncrypt)
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file|dir|glob]...",
	Short: "Encrypts the values of .env files into .enc files",
	Long: `Encrypts every value of the given .env files with a password and writes
the result next to each input with an .enc suffix. Keys, comments and blank
lines stay readable.

With no arguments on a terminal, lists the .env files in the current
directory and asks which to encrypt. Without a terminal, or with
--non-interactive, every plain .env file in the current directory is
encrypted.

The password comes from --password, --password-stdin, the environment
variable named by password_env in the config (ENVC_PASSWORD by default),
or a prompt, in that order.

Examples:
  # Choose files interactively
  envc encrypt

  # Encrypt one file
  envc encrypt .env -p "$PASSWORD"

  # Encrypt to a custom path, overwriting it
  envc encrypt .env.production -o secrets/prod.env.enc --yes

  # Encrypt every .env file below services/
  envc encrypt 'services/**/.env*'

  # Preview without writing
  envc encrypt --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args, engine.ModeEncrypt, &encryptFlags)
	},
}
