package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/tutorials/internal/config"
	"github.com/saltyorg/tutorials/internal/database"
	"github.com/saltyorg/tutorials/internal/logging"
	"github.com/saltyorg/tutorials/internal/shell"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	dbPath     string
	configFile string
	verbosity  int
)

// app holds what every command needs once the database is open
type app struct {
	source *config.Source
	db     *database.DB
	store  *database.TutorialStore
}

var current *app

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tutorials",
		Short: "Tutorials - manage a catalogue of tutorials",
		Long: `Tutorials keeps a catalogue of tutorials (title, author, URL and publish date) in a SQLite database.
Run without a subcommand to start the interactive menu.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runShell,
	}

	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set TUTORIALS_DB_PATH)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Optional config file (yaml, toml or json)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:              "version",
		Short:            "Show version information",
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tutorials %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	rootCmd.AddCommand(
		newListCmd(),
		newGetCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newMaintainCmd(),
	)

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	src, err := config.NewSource(configFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		src.Set(config.KeyDBPath, dbPath)
	}
	loader := config.NewLoader(src)

	path := loader.String(config.KeyDBPath, config.DefaultDatabasePath)
	level := logging.LevelForVerbosity(verbosity)
	logging.Apply(level, loader, loader.String(config.KeyLogFile, logging.FilePathForDB(path)))

	log.Debug().
		Str("version", version).
		Str("database", path).
		Msg("Starting tutorials")

	db, err := database.Open(path, database.Options{
		BusyTimeout: loader.Duration(config.KeyDBBusyTimeout, database.DefaultBusyTimeout),
	})
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to initialize database")
		return err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		log.Error().Err(err).Msg("Failed to prepare database schema")
		return err
	}

	current = &app{
		source: src,
		db:     db,
		store:  database.NewTutorialStore(db),
	}
	return nil
}

func closeApp() {
	if current == nil {
		return
	}
	if err := current.db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
	}
	current = nil
}

func runShell(cmd *cobra.Command, args []string) error {
	level := logging.LevelForVerbosity(verbosity)
	defaultLogPath := logging.FilePathForDB(current.db.Path())
	current.source.Watch(func(loader *config.Loader) {
		logging.Apply(level, loader, loader.String(config.KeyLogFile, defaultLogPath))
	})

	sh := shell.New(current.store, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err := sh.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
		return err
	}
	return nil
}
