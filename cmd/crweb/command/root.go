// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the crweb
// program. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// can be used for the database initialization and upgrade actions, and
// the cars, packages, testimonials, and book sub-commands manage the
// server entities through its REST API.
//
//	./crweb [-c /path/of/config.yaml]              # start web server
//	./crweb db init-dev [-c /path/of/config.yaml]
//	./crweb db init-prod [-c /path/of/config.yaml]
//	./crweb db upgrade [-c /path/of/config.yaml]
//	./crweb cars list
//	./crweb cars create -f car.yaml
//	./crweb cars update <id> -f car.yaml
//	./crweb cars delete <id>
//	./crweb book <car-id> --start 2024-06-01T10:00:00Z --end ...
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/car-rental/pkg/adapter/config"
	"github.com/momeni/car-rental/pkg/adapter/config/cfg1"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "crweb",
	Short: "Car rental web server and its administration commands",
	Long: `Car rental web server which serves the cars, tour packages,
and customer testimonials over a REST API under /api and quotes the
booking prices based on the per-kilometer pricing bands of each car.
Entities are persisted in a PostgreSQL database which may be
initialized or upgraded using the db sub-commands.
The cars, packages, testimonials, and book sub-commands act as the
administration client of a running server.`,
	PersistentPreRunE: setupLogger,
	RunE:              startWebServer,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
}

// setupLogger installs the default logger and tags the records which
// are logged by the cmd command with its path, e.g., "crweb db upgrade".
func setupLogger(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parsing log level %q: %w", logLevel, err)
	}
	log.Setup(os.Stderr, level, logJSON)
	cmd.SetContext(log.With(
		cmd.Context(), slog.String("command", cmd.CommandPath()),
	))
	return nil
}

// loadConfig loads the configuration file which is selected by the -c
// flag, the CONFIG_FILE environment variable, or the default path.
func loadConfig(ctx context.Context) (*cfg1.Config, error) {
	path := config.Path(cfgPath)
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", path, err)
	}
	log.Debug(
		ctx, "configuration is loaded",
		slog.String("path", path),
		slog.String("config", c.Version().String()),
		slog.String("database", c.SchemaVersion().String()),
		log.Valuer("client-timeout", c.Client.Timeout),
	)
	return c, nil
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if v := c.SchemaVersion(); v != postgres.Version {
		return fmt.Errorf(
			"configured schema v%s is not the latest v%s, run db upgrade",
			v, postgres.Version,
		)
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err = migrationuc.CheckSchemaVersion(ctx, p, c); err != nil {
		var mismatch *cerr.MismatchingSemVerError
		if errors.As(err, &mismatch) && mismatch.Upgradable() {
			return fmt.Errorf(
				"database schema is v%s, run crweb db upgrade: %w",
				mismatch.Actual(), err,
			)
		}
		return fmt.Errorf("checking DB schema version: %w", err)
	}
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c.Usecases); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(ctx, "starting web server", slog.String("addr", *c.Gin.Address))
	if err = e.Run(*c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(
		&cfgPath, "config", "c", "",
		"config file path (default $"+config.EnvConfigFile+
			" or "+config.DefaultPath+")",
	)
	flags.StringVar(
		&logLevel, "log-level", "info", "debug, info, warn, or error",
	)
	flags.BoolVar(&logJSON, "log-json", false, "write JSON log lines")
}
