package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Photic23/rsa-oaep/internal/app"
	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// progressInterval is how often a running key generation reports that it is still busy
var progressInterval = 2 * time.Second

// KeyCommandHandler encapsulates logic for generating key files via CLI.
type KeyCommandHandler struct{}

// GenerateKeysCmd generates an RSA key pair and writes both key files into the selected directory
func (commandHandler *KeyCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	keyDir, err := requireFlag(cmd, "key-dir")
	if err != nil {
		return err
	}
	keySize := cfg.Crypto.DefaultKeySize
	if cmd.Flags().Changed("key-size") {
		if keySize, err = cmd.Flags().GetInt("key-size"); err != nil {
			return fmt.Errorf("invalid key-size flag: %w", err)
		}
	}
	exportPrimes := cfg.Crypto.ExportPrimes
	if cmd.Flags().Changed("export-primes") {
		if exportPrimes, err = cmd.Flags().GetBool("export-primes"); err != nil {
			return fmt.Errorf("invalid export-primes flag: %w", err)
		}
	}

	keyEngine, err := cryptography.NewRSAKeyEngine(nil, log)
	if err != nil {
		return fmt.Errorf("failed to create key engine: %w", err)
	}

	keyPair, err := generateWithProgress(cmd.Context(), keyEngine, keySize, cfg.Crypto.MaxGenerationAttempts, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create key directory: %w", cryptoalg.ErrIOFailure, err)
	}

	uniqueID := uuid.New().String()
	publicKeyFilePath := filepath.Join(keyDir, uniqueID+"-public-key.txt")
	privateKeyFilePath := filepath.Join(keyDir, uniqueID+"-private-key.txt")

	if err := keyEngine.SaveKey(keyPair.PublicRecord(), publicKeyFilePath); err != nil {
		return err
	}
	if err := keyEngine.SaveKey(keyPair.PrivateRecord(exportPrimes), privateKeyFilePath); err != nil {
		return err
	}

	log.Info("Public key path ", publicKeyFilePath)
	log.Info("Private key path ", privateKeyFilePath)
	fmt.Fprintf(cmd.OutOrStdout(), "fingerprint %s\n", app.Fingerprint(keyPair.N.Bytes()))
	return nil
}

type generationResult struct {
	keyPair *cryptoalg.KeyPair
	err     error
}

// generateWithProgress derives a key pair on a worker goroutine and logs progress until it finishes.
func generateWithProgress(ctx context.Context, keyEngine cryptoalg.KeyEngine, bits, maxAttempts int, log logger.Logger) (*cryptoalg.KeyPair, error) {
	results := make(chan generationResult, 1)
	go func() {
		keyPair, err := app.GenerateKeyPair(ctx, keyEngine, bits, maxAttempts, log, nil)
		results <- generationResult{keyPair: keyPair, err: err}
	}()

	started := time.Now()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	log.Info("Generating ", bits, " bit RSA key pair")
	for {
		select {
		case result := <-results:
			if result.err != nil {
				return nil, result.err
			}
			log.Info("Key pair generated in ", time.Since(started).Round(time.Millisecond))
			return result.keyPair, nil
		case <-ticker.C:
			log.Info("Still searching for primes after ", time.Since(started).Round(time.Second))
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// InitKeyCommands registers key generation commands
func InitKeyCommands(rootCmd *cobra.Command) {
	handler := &KeyCommandHandler{}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("key-size", "", cryptoalg.DefaultKeySize, "RSA modulus size in bits (1024, 2048, 3072 or 4096)")
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the key files")
	generateKeysCmd.Flags().BoolP("export-primes", "", true, "Append p and q to the private key file")
	rootCmd.AddCommand(generateKeysCmd)
}
