package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the rsa-oaep-cli command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rsa-oaep-cli",
		Short: "RSA-OAEP file encryption CLI tool",
		Long: `rsa-oaep-cli generates RSA key pairs and encrypts files block by block with RSA-OAEP.

Key files hold hexadecimal fields separated by newlines: the modulus followed by the
public or private exponent, and for private keys optionally the primes p and q.
Encrypted files start with an 11 byte header recording the original file extension.

Settings are read from the YAML file given by --config or ` + configEnvVar + `,
and may be overridden by RSA_OAEP_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML configuration file")

	InitKeyCommands(rootCmd)
	InitFileCommands(rootCmd)
	InitRegistryCommands(rootCmd)
	return rootCmd
}
