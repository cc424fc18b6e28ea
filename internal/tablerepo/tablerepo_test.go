package tablerepo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-insights/pkg/configpkg"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		config    configpkg.Config
		wantType  Loader
		wantError bool
	}{
		{
			name:     "CSV",
			config:   configpkg.Config{TableSource: configpkg.TableSourceCSV, CSVDir: "testdata/bank"},
			wantType: &RepoCSV{},
		},
		{
			name:      "PostgresWithoutConnection",
			config:    configpkg.Config{TableSource: configpkg.TableSourcePostgres},
			wantError: true,
		},
		{
			name:      "UnsupportedSource",
			config:    configpkg.Config{TableSource: "bigquery"},
			wantError: true,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			loader, err := New(nil, tc.config)
			if tc.wantError {
				require.Error(t, err)
				require.Nil(t, loader)
				return
			}

			require.NoError(t, err)
			require.IsType(t, tc.wantType, loader)
		})
	}
}
