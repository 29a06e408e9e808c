package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/filestore"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/repository"
	"github.com/FACorreiaa/tally-bridge/internal/domain/importer/service"
	"github.com/FACorreiaa/tally-bridge/pkg/config"
	"github.com/FACorreiaa/tally-bridge/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tallybridge",
		Short:        "Import accounting exports (XML, XLSX, CSV) into the canonical store",
		SilenceUsage: true,
	}
	root.AddCommand(newImportCmd(), newMigrateCmd())
	return root
}

func newImportCmd() *cobra.Command {
	var (
		tenant      string
		keep        bool
		skipGroups  bool
		skipLedgers bool
		skipStock   bool
		skipVchr    bool
		maxVouchers int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse an export file and merge it into the tenant's books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid tenant id %q: %w", tenant, err)
			}

			logger := newLogger()
			cfg, database, err := openDatabase(logger)
			if err != nil {
				return err
			}
			defer database.Close()

			if maxVouchers == 0 {
				maxVouchers = cfg.Import.MaxVouchers
			}
			opts := service.Options{
				ImportGroups:     !skipGroups,
				ImportLedgers:    !skipLedgers,
				ImportStockItems: !skipStock,
				ImportVouchers:   !skipVchr,
				MaxVouchers:      maxVouchers,
			}

			path := args[0]
			files := filestore.NewLocal(filepath.Dir(path))
			repos := repository.NewPostgres(database.Pool)
			svc := service.NewImportService(repos, files, logger)

			var result *service.ImportResult
			if keep {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				result, err = svc.Import(cmd.Context(), tenantID, filepath.Base(path), data, opts)
				if err != nil {
					return err
				}
			} else {
				result, err = svc.ImportFile(cmd.Context(), tenantID, filepath.Base(path), opts)
				if err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant UUID to import into (required)")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the input file after a successful import")
	cmd.Flags().BoolVar(&skipGroups, "skip-groups", false, "do not import account groups")
	cmd.Flags().BoolVar(&skipLedgers, "skip-ledgers", false, "do not import ledgers")
	cmd.Flags().BoolVar(&skipStock, "skip-stock-items", false, "do not import stock items")
	cmd.Flags().BoolVar(&skipVchr, "skip-vouchers", false, "do not import vouchers")
	cmd.Flags().IntVar(&maxVouchers, "max-vouchers", 0, "voucher cap per run (default from config)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			_, database, err := openDatabase(logger)
			if err != nil {
				return err
			}
			defer database.Close()
			logger.Info("migrations up to date")
			return nil
		},
	}
}

func newLogger() *slog.Logger {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// openDatabase connects the pool and brings the schema up to date.
func openDatabase(logger *slog.Logger) (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, err
	}

	return cfg, database, nil
}
