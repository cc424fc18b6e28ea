// Package main runs the HTTP API serving banking reports and data quality checks.
package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-insights/cmd/httpserver"
	"github.com/go-petr/bank-insights/internal/middleware"
	"github.com/go-petr/bank-insights/pkg/clockpkg"
	"github.com/go-petr/bank-insights/pkg/configpkg"
	"github.com/go-petr/bank-insights/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	clock, err := clockpkg.InZone(config.ReportTimezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", config.ReportTimezone).Msg("cannot load report timezone")
	}

	var db *sql.DB
	if config.TableSource == configpkg.TableSourcePostgres {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to database")
		}
	}

	server, err := httpserver.New(db, logger, config, clock)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("table_source", config.TableSource).Msg("BANK REPORTS SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
