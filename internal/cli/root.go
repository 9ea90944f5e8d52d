// Package cli wires configuration, storage, notifications and the checklist
// service behind the clinicdesk command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/config"
	"github.com/sadopc/clinicdesk/internal/logging"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/schedule"
	"github.com/sadopc/clinicdesk/internal/store"
	"github.com/sadopc/clinicdesk/internal/tui"
)

// RootCommand is the clinicdesk command tree.
type RootCommand struct {
	cmd *cobra.Command

	configPath string
	dbPath     string
	logLevel   string
	role       string

	// runTUI starts the interactive program; tests replace it.
	runTUI func(s *session) error
}

// NewRootCommand builds the root command and its subcommands.
func NewRootCommand() *RootCommand {
	root := &RootCommand{runTUI: runProgram}

	root.cmd = &cobra.Command{
		Use:   "clinicdesk",
		Short: "Daily task checklist for the clinic team",
		Long: `clinicdesk keeps the daily checklist for the front desk, finance and
clinical assistant roles. Ticks are saved as you go, the list resets every
weekday evening and an optional desktop reminder goes out once a day.

Running clinicdesk without a subcommand opens the interactive checklist.

CONFIGURATION:
  ~/.config/clinicdesk/config.yaml, overridden by CLINICDESK_* variables
  (for example CLINICDESK_SCHEDULE_RESET_HOUR=19) and then by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.open(true)
			if err != nil {
				return err
			}
			defer s.Close()
			return root.runTUI(s)
		},
	}

	flags := root.cmd.PersistentFlags()
	flags.StringVar(&root.configPath, "config", "", "config file (default ~/.config/clinicdesk/config.yaml)")
	flags.StringVar(&root.dbPath, "db", "", "database path (overrides db_path)")
	flags.StringVar(&root.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&root.role, "role", "", "active role: Atendente, Financeiro or ASB")

	root.cmd.AddCommand(
		root.newStatusCommand(),
		root.newEvaluateCommand(),
		root.newExportCommand(),
		root.newConfigCommand(),
	)
	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the command tree with os.Args.
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Execute runs clinicdesk and reports errors on stderr.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig applies flag overrides on top of file and environment.
func (r *RootCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	if r.dbPath != "" {
		cfg.DBPath = r.dbPath
	}
	if r.logLevel != "" {
		cfg.Log.Level = r.logLevel
	}
	return cfg, nil
}

// session holds everything one command invocation opened.
type session struct {
	cfg   *config.Config
	store *store.Store
	list  *checklist.Checklist
	log   *slog.Logger
	eval  checklist.Evaluation
	// evalErr is the startup evaluation failure, if any.
	evalErr error

	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}

func (s *session) policy() schedule.Policy {
	return schedule.Policy{
		ResetHour:    s.cfg.Schedule.ResetHour,
		ReminderHour: s.cfg.Schedule.ReminderHour,
	}
}

// open loads config, the database and the checklist. With evaluate set the
// schedule rules run once before returning.
func (r *RootCommand) open(evaluate bool) (*session, error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	role := catalog.FrontDesk
	if r.role != "" {
		if role, err = catalog.ParseRole(r.role); err != nil {
			return nil, err
		}
	}
	s := &session{cfg: cfg}

	logOut := io.Discard
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, f)
		logOut = f
	}
	s.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})

	db, err := store.New(cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.store = db
	s.closers = append(s.closers, db)

	n, err := notify.New(cfg.Notifications.Backend, db)
	if err != nil {
		s.Close()
		return nil, err
	}

	opts := checklist.Options{
		Repo:     db,
		Notifier: n,
		Policy:   s.policy(),
		Logger:   s.log,
		Role:     role,
	}
	if !evaluate {
		s.list = checklist.New(opts)
		s.list.Load()
		return s, nil
	}

	s.list, s.eval, s.evalErr = checklist.Open(opts)
	if s.evalErr != nil {
		s.log.Error("startup evaluation failed", "error", s.evalErr)
	}
	return s, nil
}

func runProgram(s *session) error {
	app := tui.NewApp(s.list, s.store, tui.Options{
		Policy:   s.policy(),
		Interval: s.cfg.Schedule.Interval,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
