package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cinema-booking-cli/catalog"
	"cinema-booking-cli/checkout"
	"cinema-booking-cli/config"
	"cinema-booking-cli/logger"
	"cinema-booking-cli/session"
	"cinema-booking-cli/store"
	"cinema-booking-cli/tui"
)

const appName = "cinema-booking-cli"

// app is the state shared by every command for one invocation.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	session *session.Session
	closers []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// storageLocation describes where bookings are kept, for user messages.
func (a *app) storageLocation() string {
	if a.cfg.DatabaseURL != "" {
		return "PostgreSQL"
	}
	return a.cfg.BookingsFile
}

func openApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	level := logger.ParseLevel(cfg.Log.Level)
	log, closeLog, err := logger.OpenFile(cfg.Log.File, level)
	if err != nil {
		log = logger.New(stderr, slog.LevelWarn)
	} else {
		a.closers = append(a.closers, closeLog)
	}
	a.log = log.With(slog.String("app", appName))

	var bookings store.BookingStore
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, func() error { pg.Close(); return nil })
		bookings = pg
	} else {
		bookings = store.NewFileStore(cfg.BookingsFile, a.log)
	}

	a.session = session.New(catalog.Default(), bookings, checkout.SystemClock, a.log)
	if err := a.session.Open(ctx); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	return a, nil
}

// withApp wraps a command body with application setup and teardown.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd, args, a)
	}
}

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Book cinema seats from the terminal",
		Long:          `Browse the movie catalog, pick seats, check out and keep track of past bookings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			p := tea.NewProgram(tui.New(a.session, tui.Options{
				Context:         cmd.Context(),
				Log:             a.log,
				ReceiptDir:      a.cfg.ReceiptDir,
				StorageLocation: a.storageLocation(),
			}), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		}),
	}

	rootCmd.AddCommand(
		newMoviesCmd(),
		newBookCmd(),
		newBookingsCmd(),
		newExportCmd(),
		newReceiptCmd(),
		newVersionCmd(version),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(version string, commit string) int {
	if commit != "none" && commit != "" {
		version = fmt.Sprintf("%s (%s)", version, commit)
	}
	rootCmd := newRootCmd(version)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	}
}
