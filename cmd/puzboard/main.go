package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/puzboard/internal/config"
	"github.com/jask/puzboard/internal/database"
	"github.com/jask/puzboard/internal/database/repository"
	"github.com/jask/puzboard/internal/playboard"
	"github.com/jask/puzboard/internal/puz"
	"github.com/jask/puzboard/internal/service"
	"github.com/jask/puzboard/internal/tui"
)

var version = "dev"

// env is shared by every subcommand once the root pre-run has opened the library.
type env struct {
	cfg     config.Config
	db      *sql.DB
	lib     *service.Library
	logger  *slog.Logger
	logFile *os.File
}

func main() {
	e := &env{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "puzboard",
		Short:         "Solve Across Lite crosswords in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("PUZBOARD_CONFIG", configPath); err != nil {
					return err
				}
			}
			// play owns the terminal, so its logs go to a file.
			return e.open(cmd.Context(), cmd.Name() == "play" || cmd.Name() == "puzboard")
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.play(cmd.Context(), "")
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/puzboard/config.toml)")

	importCmd := &cobra.Command{
		Use:   "import <file.puz>...",
		Short: "Add Across Lite puzzles to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			return e.importFiles(cmd.Context(), cmd.OutOrStdout(), args, source)
		},
	}
	importCmd.Flags().String("source", "", "Source label stored with the puzzle (default: file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles, most recently played first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.list(cmd.Context(), cmd.OutOrStdout())
		},
	}

	playCmd := &cobra.Command{
		Use:   "play [id]",
		Short: "Solve a stored puzzle; without an id a picker is shown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return e.play(cmd.Context(), prefix)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <id> <out.puz>",
		Short: "Write a stored puzzle and its fill as Across Lite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.export(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show the saved solve state of a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.info(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a puzzle with its notes and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.lib.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := e.lib.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", shortID(id))
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			m := &service.MaintenanceService{DB: e.db}
			if err := m.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "library cleared")
			return nil
		},
	}
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Store the bundled sample puzzle if the library is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := database.SeedDefaults(cmd.Context(), e.db)
			if err != nil {
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "library is not empty, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded sample %s\n", shortID(id))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Save(e.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(importCmd, listCmd, playCmd, exportCmd, infoCmd, deleteCmd, resetCmd, demoCmd, configCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (e *env) open(ctx context.Context, logToFile bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	e.cfg = cfg

	var out io.Writer = os.Stderr
	if logToFile && cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		e.logFile = f
		out = f
	}
	e.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(e.logger)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	e.db = db
	if err := database.RunMigrationsWithDB(db, cfg.Database.Migrations); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	e.lib = service.NewLibrary(db, e.logger)
	e.logger.Debug("library opened", "path", cfg.Database.Path)
	return nil
}

func (e *env) close() error {
	var err error
	if e.db != nil {
		err = e.db.Close()
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
	return err
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (e *env) importFiles(ctx context.Context, w io.Writer, paths []string, source string) error {
	var failed int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			e.logger.Error("read puzzle", "path", path, "err", err)
			fmt.Fprintf(w, "%s: %v\n", path, err)
			failed++
			continue
		}
		label := source
		if label == "" {
			label = filepath.Base(path)
		}
		res, err := e.lib.Import(ctx, data, label)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)
			failed++
			continue
		}
		state := "added"
		if !res.Created {
			state = "already stored"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", shortID(res.ID), res.Title, state)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(paths))
	}
	return nil
}

func (e *env) list(ctx context.Context, w io.Writer) error {
	rows, err := e.lib.List(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "no puzzles stored; try `puzboard demo` or `puzboard import`")
		return nil
	}
	fmt.Fprintln(w, renderList(rows))
	return nil
}

func renderList(rows []repository.PuzzleSummary) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "TITLE", "AUTHOR", "SIZE", "FILLED", "CORRECT", "TIME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, r := range rows {
		t.Row(shortID(r.ID), r.Title, r.Author,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d%%", r.PercentFilled),
			fmt.Sprintf("%d%%", r.PercentComplete),
			(time.Duration(r.ElapsedMS) * time.Millisecond).String())
	}
	return t.String()
}

func (e *env) play(ctx context.Context, prefix string) error {
	id := ""
	if prefix != "" {
		var err error
		if id, err = e.lib.Resolve(ctx, prefix); err != nil {
			return err
		}
	} else {
		rows, err := e.lib.List(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no puzzles stored; run `puzboard demo` or `puzboard import` first")
		}
		picker := tui.NewPicker(rows)
		final, err := tea.NewProgram(picker, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		chosen, ok := final.(*tui.Picker).Chosen()
		if !ok {
			return nil
		}
		id = chosen
	}

	p, err := e.lib.Open(ctx, id)
	if err != nil {
		return err
	}
	opts, err := tui.BoardOptions(e.cfg.Play)
	if err != nil {
		return err
	}
	board := playboard.New(p, opts...)

	app := tui.New(ctx, e.lib, id, board, e.logger)
	defer app.Close()
	e.logger.Info("playing", "id", id, "title", p.Title)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

func (e *env) export(ctx context.Context, w io.Writer, prefix, out string) error {
	id, err := e.lib.Resolve(ctx, prefix)
	if err != nil {
		return err
	}
	data, err := e.lib.Export(ctx, id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(w, "wrote %s (%d bytes)\n", out, len(data))
	return nil
}

func (e *env) info(ctx context.Context, w io.Writer, prefix string) error {
	id, err := e.lib.Resolve(ctx, prefix)
	if err != nil {
		return err
	}
	meta, rev, err := e.lib.Info(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "id:        %s\n", id)
	fmt.Fprintf(w, "title:     %s\n", meta.Title)
	fmt.Fprintf(w, "author:    %s\n", meta.Author)
	if meta.Source != "" {
		fmt.Fprintf(w, "source:    %s\n", meta.Source)
	}
	if meta.SourceURL != "" {
		fmt.Fprintf(w, "url:       %s\n", meta.SourceURL)
	}
	if !meta.Date.IsZero() {
		fmt.Fprintf(w, "date:      %s\n", meta.Date.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "filled:    %d%%\n", meta.PercentFilled)
	fmt.Fprintf(w, "correct:   %d%%\n", meta.PercentComplete)
	fmt.Fprintf(w, "time:      %s\n", meta.Time)
	fmt.Fprintf(w, "cursor:    %s %s\n", meta.Position, direction(meta))
	fmt.Fprintf(w, "updatable: %t\n", meta.Updatable)
	fmt.Fprintf(w, "revision:  %d\n", rev)
	return nil
}

func direction(m puz.Meta) string {
	if m.Across {
		return "across"
	}
	return "down"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
