package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/store"
)

var (
	resolveTeam   string
	resolvePlayer string
	resolveDate   string
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve box score links once and print them",
	Example: `  boxfinder resolve --team Lakers --date 2024-01-15
  boxfinder resolve --player "Connor McDavid" --date 2024-03-02 --json`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveTeam, "team", "t", "", "team name")
	resolveCmd.Flags().StringVarP(&resolvePlayer, "player", "p", "", "player name")
	resolveCmd.Flags().StringVarP(&resolveDate, "date", "d", "", "game date, YYYY-MM-DD")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the full result as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	a, err := build(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.search.Search(cmd.Context(), domain.SearchQuery{
		PlayerName: resolvePlayer,
		TeamName:   resolveTeam,
		GameDate:   resolveDate,
	})
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		for field, msg := range verrs.Fields() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
		}
		return errors.New("invalid query")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "%s on %s\n\n", result.MatchInfo.TeamName, result.MatchInfo.FormattedDate)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PROVIDER\tLEAGUE\tTYPE\tURL\n")
	for _, l := range result.Links {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Provider, l.League, l.LinkType, l.URL)
	}
	return w.Flush()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the roster directory schema to ATLAS_DSN",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.AtlasDSN == "" {
			return errors.New("atlas dsn is required (--atlas-dsn or ATLAS_DSN)")
		}

		db, err := store.NewDatabase(cmd.Context(), cfg.AtlasDSN, logger)
		if err != nil {
			return fmt.Errorf("connect atlas: %w", err)
		}
		defer db.Close()

		if err := db.RunMigrations(cmd.Context()); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	},
}
