package cmd

import (
	"github.com/PolarWolf314/envc/internal/engine"
	"github.com/spf13/cobra"
)

func init() {
	decryptFlags.register(decryptCmd.Flags(), engine.ModeDecrypt)
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file|dir|glob]...",
	Short: "Decrypts .enc files back into plain .env files",
	Long: `Decrypts every value of the given encrypted files and writes the result
without the .enc (or .encrypted) suffix.

Before asking for a password, each file is checked to look encrypted, so a
plain file is never decrypted by mistake. Use --skip-validation to bypass
the check.

A wrong password and a corrupted value fail the same way, and no output is
written for a file that fails.

Examples:
  # Choose files interactively
  envc decrypt

  # Decrypt one file with the password from the environment
  ENVC_PASSWORD=... envc decrypt .env.enc

  # Decrypt and overwrite the existing .env
  envc decrypt .env.enc --yes

  # Read the password from a file
  envc decrypt .env.enc --password-stdin < password.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args, engine.ModeDecrypt, &decryptFlags)
	},
}
