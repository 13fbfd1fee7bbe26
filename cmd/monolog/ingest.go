package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monolog-ai/monolog/application/service"
)

func ingestCmd() *cobra.Command {
	var (
		envFile  string
		feedPath string
		imageDir string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a crawler feed into the metadata store",
		Long: `Ingest a crawler feed into the metadata store.

Reads a JSON feed of products, hashes their downloaded images, and writes
metadata rows for products that are new or changed. Unchanged products are
skipped; updated products keep their original creation timestamp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), envFile, feedPath, imageDir)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&feedPath, "feed", "", "Path to the JSON feed file (required)")
	cmd.Flags().StringVar(&imageDir, "images", "", "Directory of downloaded product images")
	_ = cmd.MarkFlagRequired("feed")

	return cmd
}

func runIngest(ctx context.Context, envFile, feedPath, imageDir string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	boot, err := newBootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer boot.Close()

	svc := service.NewIngestService(boot.store, boot.logger,
		service.WithHashWorkers(cfg.HashWorkers()))

	report, err := svc.Run(ctx, feedPath, imageDir)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	fmt.Printf("ingested %d items: %d new, %d updated, %d skipped, %d errors\n",
		report.Total, report.New, report.Updated, report.Skipped, report.Errors)
	return nil
}
