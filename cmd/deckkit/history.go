package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/database"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/report"
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved extraction results",
		Long: `History reads the results saved by 'deckkit extract-fonts --save'.

The database lives in the XDG data directory (for example
~/.local/share/deckkit/deckkit.db) unless databaseDir is set in the
configuration file.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	list.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 for all)")
	list.Flags().BoolP("json", "j", false, "Output JSON")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the result of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	addReportFlags(show)

	find := &cobra.Command{
		Use:   "find <sha3-256>",
		Short: "List the runs that embedded a font file",
		Long: `Find lists every saved run that embedded a font with the given SHA3-256
digest. The digest is shown by 'extract-fonts -v' and in JSON reports.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistoryFind,
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	}

	cmd.AddCommand(list, show, find, del)
	return cmd
}

// openHistory opens the existing history database.
func openHistory(cmd *cobra.Command) (*config.Config, *database.HistoryDB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg.Verbose)
	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func parseRunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", s)
	}
	return id, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	_, db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return printRuns(cmd.OutOrStdout(), runs, asJSON)
}

func printRuns(out io.Writer, runs []database.RunSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	u := newUI(out)
	if len(runs) == 0 {
		u.info("No saved runs")
		return nil
	}
	for _, r := range runs {
		u.keyValue(fmt.Sprintf("#%d", r.ID), r.Source)
		u.detail("%s  %s  embedded %d  referenced %d  (system %d, commercial %d, free %d)",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Format,
			r.Embedded, r.Referenced, r.System, r.Commercial, r.Free)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	cfg, db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	res, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	var tally model.Tally
	tally.Success()
	rep := report.NewExtractionReport([]*model.ExtractionResult{res}, tally)
	rep.GeneratedAt = res.ExtractedAt
	return writeReport(cfg, cmd.OutOrStdout(), func(w report.Writer) error {
		_, err := w.Write(rep)
		return err
	})
}

func runHistoryFind(cmd *cobra.Command, args []string) error {
	_, db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	return findFont(cmd.Context(), db, args[0], cmd.OutOrStdout())
}

func findFont(ctx context.Context, db *database.HistoryDB, digest string, out io.Writer) error {
	sightings, err := db.FindFont(ctx, digest)
	if err != nil {
		return err
	}
	u := newUI(out)
	if len(sightings) == 0 {
		u.info("No saved run embedded this font")
		return nil
	}
	for _, s := range sightings {
		u.keyValue(fmt.Sprintf("#%d", s.RunID), s.Source)
		u.detail("%s  %s  %d bytes", s.FileName, s.Family, s.Size)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	_, db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.DeleteRun(cmd.Context(), id); err != nil {
		return err
	}
	newUI(cmd.OutOrStdout()).success("Deleted run #%d", id)
	return nil
}
