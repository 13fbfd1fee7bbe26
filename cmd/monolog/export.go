package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/monolog-ai/monolog/infrastructure/export"
)

func exportCmd() *cobra.Command {
	var (
		envFile string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the pivoted catalog as CSV",
		Long: `Export the pivoted catalog as CSV.

Writes one row per product with the catalog's display headers. The file
starts with a UTF-8 byte order mark so spreadsheet tools render the
Korean column names correctly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), envFile, outPath)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "products.csv", "Output CSV path, or - for stdout")

	return cmd
}

func runExport(ctx context.Context, envFile, outPath string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	boot, err := newBootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer boot.Close()

	var f *os.File
	out := os.Stdout
	if outPath != "-" {
		f, err = os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		out = f
	}

	exporter := export.NewCSVExporter(boot.store)
	rows, err := exporter.Write(ctx, out)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return fmt.Errorf("export: %w", err)
	}

	// A short write can surface at close, so its error is a failed export.
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output file: %w", err)
		}
		fmt.Printf("wrote %d rows to %s\n", rows, outPath)
	}
	return nil
}
