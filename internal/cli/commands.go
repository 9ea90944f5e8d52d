package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/config"
	"github.com/sadopc/clinicdesk/internal/export"
	"github.com/sadopc/clinicdesk/internal/schedule"
)

func (r *RootCommand) newStatusCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress per role and the reminder state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open(false)
			if err != nil {
				return err
			}
			defer s.Close()
			if raw {
				return printRaw(cmd.OutOrStdout(), s)
			}
			printStatus(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "dump the stored keys and values")
	return cmd
}

func printRaw(w io.Writer, s *session) error {
	settings, err := s.store.GetAllSettings()
	if err != nil {
		return err
	}
	for _, kv := range settings {
		fmt.Fprintf(w, "%s = %s\n", kv.Key, kv.Value)
	}
	return nil
}

func printStatus(w io.Writer, s *session) {
	for _, role := range catalog.Roles() {
		done, total, pct := s.list.Progress(role)
		fmt.Fprintf(w, "%-12s %3d/%-3d %3d%%\n", role.String(), done, total, pct)
	}

	st := s.list.State()
	lastReset := "never"
	if st.LastReset.Unix() > 0 {
		lastReset = st.LastReset.Local().Format("2006-01-02 15:04")
	}
	lastNotified := "never"
	if day := st.NotifiedOn(); day != "" {
		lastNotified = day
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "last reset:        %s\n", lastReset)
	fmt.Fprintf(w, "reminders:         %s\n", onOff(st.NotificationsEnabled))
	fmt.Fprintf(w, "permission:        %s\n", s.list.Permission())
	fmt.Fprintf(w, "last reminder:     %s\n", lastNotified)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func (r *RootCommand) newEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Run the reset and reminder rules once and exit",
		Long: `evaluate applies the daily reset and reminder rules against the current
time without opening the interactive checklist. It is safe to run from cron.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open(true)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.evalErr != nil {
				return s.evalErr
			}

			out := cmd.OutOrStdout()
			ev := s.eval
			if !ev.Reset && !ev.Reminded {
				fmt.Fprintln(out, "nothing to do")
				return nil
			}
			if ev.Reset {
				fmt.Fprintf(out, "reset: %s\n", ev.Trigger)
			}
			if ev.Reminded {
				fmt.Fprintf(out, "reminder: %s\n", ev.ReminderBody)
			}
			return nil
		},
	}
}

func (r *RootCommand) newExportCommand() *cobra.Command {
	var format, out, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reset history as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if out == "" {
				out = "clinicdesk-history." + format
			}

			s, err := r.open(false)
			if err != nil {
				return err
			}
			defer s.Close()

			days, err := s.store.ListHistory(from, to)
			if err != nil {
				return err
			}
			if format == "csv" {
				err = export.ToCSV(days, out)
			} else {
				err = export.ToJSON(days, out)
			}
			if err != nil {
				return err
			}

			abs, _ := filepath.Abs(out)
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(days), abs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default clinicdesk-history.<format>)")
	cmd.Flags().StringVar(&from, "from", "", "first day to include ("+schedule.DateLayout+")")
	cmd.Flags().StringVar(&to, "to", "", "first day to exclude ("+schedule.DateLayout+")")
	return cmd
}

func (r *RootCommand) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := r.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Write(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
