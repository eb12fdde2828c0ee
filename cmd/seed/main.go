package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shelter-dashboard/internal/adapters/storage"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		format  string
		timeout time.Duration
		dryRun  bool
	)

	root := &cobra.Command{
		Use:   "seed [source]",
		Short: "Importa documentos (json, ndjson o csv) desde un archivo o URL al store configurado",
		Example: "  STORE_DRIVER=mongo MONGO_URI=mongodb://localhost:27017 seed aac_shelter_outcomes.csv\n" +
			"  seed --format ndjson https://example.org/animals.jsonl",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewFromEnv()

			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			src := cfg.Store.SeedFile
			if len(args) == 1 {
				src = args[0]
			}
			if src == "" {
				return fmt.Errorf("missing source (argument or SEED_FILE)")
			}

			f, err := seed.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := httpclient.New(timeout)

			if dryRun {
				docs, err := seed.LoadFormat(ctx, src, f, client)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d documents, columns: %v\n", len(docs), animals.Columns(docs))
				return nil
			}

			if cfg.Store.Driver == config.DriverMemory {
				log.Warn("memory driver: documents are discarded on exit", nil)
			}

			n, err := importInto(ctx, cfg, src, f, client, log)
			if err != nil {
				return fmt.Errorf("seed failed after %d documents: %w", n, err)
			}
			log.Info("seed done", map[string]any{"imported": n, "driver": cfg.Store.Driver})
			return nil
		},
	}
	root.Flags().StringVar(&format, "format", "auto", "input format: auto|json|ndjson|csv")
	root.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "total timeout (download + import)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "parse the source and print a summary without writing")

	return root
}

func importInto(ctx context.Context, cfg *config.Config, src string, f seed.Format, client *httpclient.Client, log logger.Logger) (int, error) {
	store, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		return 0, err
	}
	defer func() { _ = store.Close(context.Background()) }()

	svc := animals.NewService(store.Records, log, nil)
	return seed.Run(ctx, svc, src, f, client, log)
}
