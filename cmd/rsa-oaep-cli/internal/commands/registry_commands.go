package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Photic23/rsa-oaep/internal/app"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/connector"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/persistence"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RegistryCommandHandler encapsulates logic for inspecting and pruning registered keys via CLI.
type RegistryCommandHandler struct{}

// withMetadataService opens the configured database and key connector for the duration of fn
func withMetadataService(ctx context.Context, cfg *config.AppConfig, log logger.Logger, fn func(keys.CryptoKeyMetadataService) error) error {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			log.Warn("failed to close database: ", err)
		}
	}()

	if err := persistence.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	cryptoKeyRepo, err := persistence.NewGormCryptoKeyRepository(db, log)
	if err != nil {
		return fmt.Errorf("failed to create crypto key repository: %w", err)
	}
	vaultConnector, err := connector.NewVaultConnector(ctx, &cfg.KeyConnector, log)
	if err != nil {
		return fmt.Errorf("failed to create vault connector: %w", err)
	}

	metadataService, err := app.NewCryptoKeyMetadataService(vaultConnector, cryptoKeyRepo, log)
	if err != nil {
		return fmt.Errorf("failed to create crypto key metadata service: %w", err)
	}
	return fn(metadataService)
}

// ListKeysCmd prints the registered keys as a table
func (commandHandler *RegistryCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	query := keys.NewCryptoKeyQuery()
	if query.Type, err = cmd.Flags().GetString("type"); err != nil {
		return fmt.Errorf("invalid type flag: %w", err)
	}
	if query.KeyPairID, err = cmd.Flags().GetString("key-pair-id"); err != nil {
		return fmt.Errorf("invalid key-pair-id flag: %w", err)
	}
	if query.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}
	if query.Offset, err = cmd.Flags().GetInt("offset"); err != nil {
		return fmt.Errorf("invalid offset flag: %w", err)
	}
	query.SortBy = "date_time_created"
	query.SortOrder = "desc"

	return withMetadataService(cmd.Context(), cfg, log, func(service keys.CryptoKeyMetadataService) error {
		cryptoKeyMetas, err := service.List(cmd.Context(), query)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY PAIR\tTYPE\tSIZE\tFINGERPRINT\tCREATED")
		for _, meta := range cryptoKeyMetas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				meta.ID, meta.KeyPairID, meta.Type, meta.KeySize, shortFingerprint(meta.Fingerprint), meta.DateTimeCreated.Format(time.RFC3339))
		}
		return w.Flush()
	})
}

// DeleteKeyCmd removes a registered key file and its metadata
func (commandHandler *RegistryCommandHandler) DeleteKeyCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	keyID, err := requireFlag(cmd, "id")
	if err != nil {
		return err
	}

	return withMetadataService(cmd.Context(), cfg, log, func(service keys.CryptoKeyMetadataService) error {
		if err := service.DeleteByID(cmd.Context(), keyID); err != nil {
			return err
		}
		log.Info("Deleted key ", keyID)
		return nil
	})
}

// InitRegistryCommands registers the key registry commands
func InitRegistryCommands(rootCmd *cobra.Command) {
	handler := &RegistryCommandHandler{}

	var listKeysCmd = &cobra.Command{
		Use:   "list-keys",
		Short: "List registered keys",
		RunE:  handler.ListKeysCmd,
	}
	listKeysCmd.Flags().StringP("type", "", "", "Only list public or private keys")
	listKeysCmd.Flags().StringP("key-pair-id", "", "", "Only list the keys of one pair")
	listKeysCmd.Flags().IntP("limit", "", 0, "Maximum number of keys to list")
	listKeysCmd.Flags().IntP("offset", "", 0, "Number of keys to skip")
	rootCmd.AddCommand(listKeysCmd)

	var deleteKeyCmd = &cobra.Command{
		Use:   "delete-key",
		Short: "Delete a registered key",
		RunE:  handler.DeleteKeyCmd,
	}
	deleteKeyCmd.Flags().StringP("id", "", "", "ID of the key to delete")
	rootCmd.AddCommand(deleteKeyCmd)
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 16 {
		return fingerprint[:16]
	}
	return fingerprint
}
