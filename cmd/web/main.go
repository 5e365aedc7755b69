package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/irevolution/pkg/config"
	"github.com/de-tools/irevolution/pkg/server"
	"github.com/de-tools/irevolution/pkg/store/catalog"
	"github.com/de-tools/irevolution/pkg/store/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	importData bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the iRevolution API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().BoolVar(&importData, "import", false,
		"Import the CSV exports into data.sqlite_path before serving")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	store, closeStore, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Catalog: store,
			Logger:  logger,
		},
	})

	logger.Info().Msgf("starting server on %s", cfg.Server.Addr())
	return api.Start()
}

// openCatalog serves from SQLite when data.sqlite_path is set and from the
// CSV exports under data.dir otherwise.
func openCatalog(ctx context.Context, cfg *config.Config) (catalog.Store, func(), error) {
	logger := zerolog.Ctx(ctx)
	noop := func() {}

	if cfg.Data.SQLitePath == "" {
		memory, err := catalog.LoadMemory(ctx, cfg.Data.Dir, catalog.DefaultFiles())
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load dataset from %s (run `irevolution fetch-data` first): %w",
				cfg.Data.Dir, err)
		}
		return memory, noop, nil
	}

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: cfg.Data.SQLitePath})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create SQLite instance: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close SQLite database")
		}
	}

	store, err := sqlite.NewStore(db)
	if err != nil {
		closeDB()
		return nil, noop, fmt.Errorf("failed to create catalog store: %w", err)
	}

	if importData {
		tables, err := catalog.ReadTables(ctx, cfg.Data.Dir, catalog.DefaultFiles())
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		if err := store.Import(ctx, tables); err != nil {
			closeDB()
			return nil, noop, fmt.Errorf("failed to import dataset: %w", err)
		}
		logger.Info().Str("db", cfg.Data.SQLitePath).Msg("dataset imported")
	}

	return store, closeDB, nil
}
