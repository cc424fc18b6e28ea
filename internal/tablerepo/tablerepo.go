package tablerepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/configpkg"
)

// Loader reads the three source tables into a snapshot.
type Loader interface {
	Load(ctx context.Context) (domain.Snapshot, error)
}

// New returns the loader selected by config.TableSource.
//
// conn is only used by the postgres source and may be nil otherwise.
func New(conn *sql.DB, config configpkg.Config) (Loader, error) {
	switch config.TableSource {
	case configpkg.TableSourcePostgres:
		if conn == nil {
			return nil, fmt.Errorf("table source %q needs a database connection", config.TableSource)
		}
		return NewRepoPGS(conn), nil
	case configpkg.TableSourceCSV:
		return NewRepoCSV(config.CSVDir), nil
	}

	return nil, fmt.Errorf("unsupported table source %q", config.TableSource)
}
