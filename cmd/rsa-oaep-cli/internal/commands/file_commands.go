package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography/sha256"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// FileCommandHandler encapsulates logic for encrypting, decrypting and hashing files via CLI.
type FileCommandHandler struct{}

func newFileProcessor(cmd *cobra.Command, cfg *config.AppConfig, log logger.Logger) (cryptoalg.FileProcessor, error) {
	label := cfg.Crypto.Label
	if cmd.Flags().Changed("label") {
		var err error
		if label, err = cmd.Flags().GetString("label"); err != nil {
			return nil, fmt.Errorf("invalid label flag: %w", err)
		}
	}

	keyEngine, err := cryptography.NewRSAKeyEngine(nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key engine: %w", err)
	}
	oaepProcessor, err := cryptography.NewOAEPProcessor(nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAEP processor: %w", err)
	}
	return cryptography.NewFileProcessor(keyEngine, oaepProcessor, []byte(label), log)
}

// EncryptCmd encrypts a file block by block with a public key file
func (commandHandler *FileCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	inputFile, err := requireFlag(cmd, "input-file")
	if err != nil {
		return err
	}
	outputFile, err := requireFlag(cmd, "output-file")
	if err != nil {
		return err
	}
	publicKeyPath, err := requireFlag(cmd, "public-key")
	if err != nil {
		return err
	}

	fileProcessor, err := newFileProcessor(cmd, cfg, log)
	if err != nil {
		return err
	}

	if err := fileProcessor.EncryptFile(filepath.Clean(inputFile), outputFile, publicKeyPath); err != nil {
		return err
	}

	log.Info("Encrypted data path ", outputFile)
	return nil
}

// DecryptCmd restores a file encrypted by EncryptCmd. The output extension is replaced by the recorded one.
func (commandHandler *FileCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	inputFile, err := requireFlag(cmd, "input-file")
	if err != nil {
		return err
	}
	outputFile, err := requireFlag(cmd, "output-file")
	if err != nil {
		return err
	}
	privateKeyPath, err := requireFlag(cmd, "private-key")
	if err != nil {
		return err
	}

	fileProcessor, err := newFileProcessor(cmd, cfg, log)
	if err != nil {
		return err
	}

	finalPath, err := fileProcessor.DecryptFile(filepath.Clean(inputFile), outputFile, privateKeyPath)
	if err != nil {
		return err
	}

	log.Info("Decrypted data path ", finalPath)
	fmt.Fprintln(cmd.OutOrStdout(), finalPath)
	return nil
}

// HashCmd prints the SHA-256 digest of a file
func (commandHandler *FileCommandHandler) HashCmd(cmd *cobra.Command, _ []string) error {
	inputFile, err := requireFlag(cmd, "input-file")
	if err != nil {
		return err
	}

	file, err := os.Open(filepath.Clean(inputFile))
	if err != nil {
		return fmt.Errorf("%w: failed to open input file: %w", cryptoalg.ErrIOFailure, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, bufio.NewReader(file)); err != nil {
		return fmt.Errorf("%w: failed to read input file: %w", cryptoalg.ErrIOFailure, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hasher.HexDigest(), inputFile)
	return nil
}

// InitFileCommands registers file encryption commands
func InitFileCommands(rootCmd *cobra.Command) {
	handler := &FileCommandHandler{}

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file using RSA-OAEP",
		RunE:  handler.EncryptCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file which needs to be encrypted")
	encryptFileCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptFileCmd.Flags().StringP("public-key", "", "", "Path to public key file")
	encryptFileCmd.Flags().StringP("label", "", "", "OAEP label, overrides crypto.label")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file using RSA-OAEP",
		RunE:  handler.DecryptCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Path to encrypted file")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file, its extension is replaced by the recorded one")
	decryptFileCmd.Flags().StringP("private-key", "", "", "Path to private key file")
	decryptFileCmd.Flags().StringP("label", "", "", "OAEP label, overrides crypto.label")
	rootCmd.AddCommand(decryptFileCmd)

	var hashFileCmd = &cobra.Command{
		Use:   "hash",
		Short: "Print the SHA-256 digest of a file",
		RunE:  handler.HashCmd,
	}
	hashFileCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be hashed")
	rootCmd.AddCommand(hashFileCmd)
}
