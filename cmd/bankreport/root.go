package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-petr/bank-insights/internal/reportservice"
	"github.com/go-petr/bank-insights/internal/tablerepo"
	"github.com/go-petr/bank-insights/pkg/clockpkg"
	"github.com/go-petr/bank-insights/pkg/configpkg"
	"github.com/go-petr/bank-insights/pkg/datepkg"
	"github.com/go-petr/bank-insights/pkg/dbpkg"
)

type rootFlags struct {
	configDir string
	csvDir    string
	today     string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "bankreport",
		Short: "Run banking reports and data quality checks",
		Long: `Run analytical reports and data quality checks over the customers, accounts
and transactions tables. Tables are read from Postgres or from a directory of
CSV files (customers.csv, accounts.csv, transactions.csv).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configDir, "config", "./configs", "Directory holding app.env")
	cmd.PersistentFlags().StringVar(&flags.csvDir, "csv-dir", "", "Read tables from CSV files in this directory instead of the configured source")
	cmd.PersistentFlags().StringVar(&flags.today, "today", "", "Evaluate trailing windows as of this date (YYYY-MM-DD)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newListCmd(),
		newRunCmd(flags),
		newAuditCmd(flags),
	)

	return cmd
}

// service builds the report service from config and flags. The returned func releases
// the database connection, if any.
func (f *rootFlags) service(cmd *cobra.Command) (*reportservice.Service, context.Context, func(), error) {
	noop := func() {}

	config, err := configpkg.Load(f.configDir)
	if err != nil {
		return nil, nil, noop, fmt.Errorf("cannot load config: %w", err)
	}

	if f.csvDir != "" {
		config.TableSource = configpkg.TableSourceCSV
		config.CSVDir = f.csvDir
	}

	level := zerolog.WarnLevel
	if f.verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx := logger.WithContext(cmd.Context())

	var clock clockpkg.Clock
	if f.today != "" {
		today, err := datepkg.Parse(f.today)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("invalid --today: %w", err)
		}
		clock = clockpkg.Fixed(today)
	} else {
		clock, err = clockpkg.InZone(config.ReportTimezone)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("cannot load report timezone %q: %w", config.ReportTimezone, err)
		}
	}

	var db *sql.DB
	if config.TableSource == configpkg.TableSourcePostgres {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("cannot connect to database: %w", err)
		}
	}

	closeDB := func() {
		if db == nil {
			return
		}
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("cannot close database")
		}
	}

	repo, err := tablerepo.New(db, config)
	if err != nil {
		closeDB()
		return nil, nil, noop, err
	}

	return reportservice.New(repo, clock), ctx, closeDB, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
