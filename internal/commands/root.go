package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/balkashynov/studywise/internal/config"
	"github.com/balkashynov/studywise/internal/db"
	"github.com/balkashynov/studywise/internal/logger"
	"github.com/balkashynov/studywise/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the dependencies shared by every command
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	db    *gorm.DB
	store *tracker.Store
}

var (
	current *app

	// storeOptions lets tests swap the clock and id generator
	storeOptions []tracker.Option
)

// skipApp marks commands that run without opening the database
const skipApp = "skip-app"

var rootCmd = &cobra.Command{
	Use:   "studywise",
	Short: "A CLI study timer and time tracker",
	Long: `studywise tracks how long you study each task and subject.
Start a timer, take notes on sessions and see daily, weekly and monthly totals
from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipApp] == "true" {
			return nil
		}
		switch cmd.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return nil
		}
		return openApp(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

// openApp loads config, builds the logger and opens the store
func openApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	conn, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}

	storage := db.NewSnapshotStore(conn, cfg.Storage.RecordName, log)
	opts := append([]tracker.Option{tracker.WithLogger(log)}, storeOptions...)
	store, err := tracker.Open(cmd.Context(), storage, opts...)
	if err != nil {
		_ = db.Close(conn)
		return err
	}

	log.Debug("app ready",
		slog.String("db", cfg.Storage.Path),
		slog.String("record", cfg.Storage.RecordName))
	current = &app{cfg: cfg, log: log, db: conn, store: store}
	return nil
}

func closeApp() error {
	if current == nil {
		return nil
	}
	err := db.Close(current.db)
	current = nil
	return err
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipApp: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "studywise %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command. The database is closed even when a
// command fails, since cobra skips post-run hooks on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
