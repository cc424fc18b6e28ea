package clockpkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	c := Fixed(time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestTodayUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	c := Fixed(time.Date(2024, time.June, 16, 1, 0, 0, 0, loc))
	require.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestSystemLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	require.Equal(t, loc, System{Location: loc}.Now().Location())
	require.Equal(t, time.UTC, System{}.Now().Location())
}

func TestInZone(t *testing.T) {
	c, err := InZone("UTC")
	require.NoError(t, err)
	require.Equal(t, time.UTC, c.Now().Location())

	_, err = InZone("Mars/Olympus_Mons")
	require.Error(t, err)
}
