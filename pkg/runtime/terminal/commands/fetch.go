package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/store/catalog"
	"github.com/de-tools/irevolution/pkg/store/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type FetchCmd struct {
	env     *Env
	source  string
	timeout time.Duration
	load    bool
}

func NewFetchCmd(env *Env) *cobra.Command {
	fc := &FetchCmd{env: env}
	cmd := &cobra.Command{
		Use:   "fetch-data",
		Short: "Download the workbook and export its sheets as CSV",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.source, "source", "", "Workbook URL (http, https, s3 or file); defaults to data.source")
	cmd.Flags().DurationVar(&fc.timeout, "timeout", 5*time.Minute, "Maximum time for download and export")
	cmd.Flags().BoolVar(&fc.load, "load-sqlite", false, "Import the exported CSVs into data.sqlite_path")

	return cmd
}

func (fc *FetchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), fc.timeout)
	defer cancel()

	cfg := fc.env.Config
	source := fc.source
	if source == "" {
		source = cfg.Data.Source
	}
	workbook := filepath.Join(cfg.Data.Dir, cfg.Data.Workbook)

	if _, _, err := dataset.Download(ctx, fc.env.fetchers(), source, workbook); err != nil {
		return fmt.Errorf("failed to download workbook: %w", err)
	}

	summaries, err := dataset.ExportSheets(ctx, workbook, cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to export sheets: %w", err)
	}
	if err := fc.env.Reporter.Sheets(summaries); err != nil {
		return err
	}

	if !fc.load {
		return nil
	}
	return importSQLite(ctx, cfg.Data.Dir, cfg.Data.SQLitePath)
}

func importSQLite(ctx context.Context, dir, dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("data.sqlite_path is not set")
	}

	tables, err := catalog.ReadTables(ctx, dir, catalog.DefaultFiles())
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	store, err := sqlite.NewStore(db)
	if err != nil {
		return err
	}
	if err := store.Import(ctx, tables); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("db", dbPath).Int("products", len(tables.Products)).Msg("dataset imported")
	return nil
}
