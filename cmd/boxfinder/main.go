package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/config"
)

const (
	serviceName    = "boxfinder"
	serviceVersion = "1.0.0"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Resolve box score links for a team or player on a date",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "also write JSON logs to this file, rotated")
	flags.String("transport", "http", "scoreboard transport: http, curl, browser")
	flags.String("atlas-dsn", "", "Postgres DSN for the roster directory")
	flags.Bool("parallel", false, "query leagues concurrently")
	flags.Bool("scrape-reference", false, "scrape reference sites for direct box score links")

	v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.BindPFlag("log_file", flags.Lookup("log-file"))
	v.BindPFlag("scoreboard_transport", flags.Lookup("transport"))
	v.BindPFlag("atlas_dsn", flags.Lookup("atlas-dsn"))
	v.BindPFlag("resolver_parallel", flags.Lookup("parallel"))
	v.BindPFlag("reference_scrape", flags.Lookup("scrape-reference"))

	rootCmd.AddCommand(serveCmd, resolveCmd, migrateCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", serviceName, serviceVersion)
	},
}

// setup loads configuration and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger.With(zap.String("service", serviceName)), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
