package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/product-catalog/app/database"
	"github.com/mytheresa/product-catalog/app/server"
	"github.com/mytheresa/product-catalog/models"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the Category and Product tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		a.log.Info("migrations applied")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the seed dataset into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		if seedFile != "" {
			a.cfg.SeedFile = seedFile
		}
		if err := database.Migrate(a.db); err != nil {
			return err
		}
		return runSeed(cmd.Context(), a, newManager(a))
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON or YAML dataset (defaults to SEED_FILE, then the built-in dataset)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := boot()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(a.db); err != nil {
		return err
	}

	manager := newManager(a)
	if a.cfg.SeedOnStart {
		if err := runSeed(ctx, a, manager); err != nil {
			return err
		}
	}

	ping := func(ctx context.Context) error { return database.Ping(ctx, a.db) }
	router := server.NewRouter(manager, ping, a.log)
	return server.Run(ctx, a.cfg.Addr(), router, a.cfg.ShutdownTimeout, a.log)
}

func newManager(a *app) *models.CatalogManager {
	return models.NewCatalogManager(models.NewSessionFactory(a.db), a.log)
}

func runSeed(ctx context.Context, a *app, manager *models.CatalogManager) error {
	products, err := database.LoadSeedFile(a.cfg.SeedFile)
	if err != nil {
		return err
	}
	_, err = database.Seed(ctx, manager, products, a.log.With("component", "seeder"))
	return err
}
