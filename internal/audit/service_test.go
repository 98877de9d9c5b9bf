package audit

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonatanTajada/ERP-GestorVentasB2B-Piensos-sub000/internal/shared"
)

type memoryRepo struct {
	entries []Entry
	pruned  int
}

func (r *memoryRepo) Timeline(ctx context.Context, filters Filters) ([]Entry, bool, error) {
	var matched []Entry
	for _, e := range r.entries {
		if filters.ActorID > 0 && e.ActorID != filters.ActorID {
			continue
		}
		if filters.Entity != "" && e.Entity != filters.Entity {
			continue
		}
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		matched = append(matched, e)
	}
	perPage := filters.PerPage
	if perPage < 1 {
		perPage = shared.DefaultPerPage
	}
	if len(matched) > perPage {
		return matched[:perPage], true, nil
	}
	return matched, false, nil
}

func (r *memoryRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	r.pruned = days
	return 3, nil
}

func sampleEntries(n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			ID:            int64(i + 1),
			ActorID:       1,
			ActorUsername: "admin",
			Action:        "create",
			Entity:        "clients",
			EntityID:      "42",
			Detail:        "client created",
			OccurredAt:    time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		})
	}
	return entries
}

func TestTimelineReportsNextPage(t *testing.T) {
	repo := &memoryRepo{entries: sampleEntries(25)}
	svc := NewService(repo, nil)
	ctx := context.Background()

	entries, hasNext, err := svc.Timeline(ctx, Filters{PerPage: 20})
	require.NoError(t, err)
	require.Len(t, entries, 20)
	require.True(t, hasNext)

	entries, hasNext, err = svc.Timeline(ctx, Filters{PerPage: 30})
	require.NoError(t, err)
	require.Len(t, entries, 25)
	require.False(t, hasNext)
}

func TestTimelineRejectsInvertedDateRange(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)
	ctx := context.Background()

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.Timeline(ctx, Filters{DateFrom: &from, DateTo: &to})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestPruneValidatesRetention(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Prune(ctx, 0)
	require.ErrorIs(t, err, shared.ErrValidation)

	removed, err := svc.Prune(ctx, 365)
	require.NoError(t, err)
	require.EqualValues(t, 3, removed)
	require.Equal(t, 365, repo.pruned)
}

func TestWriteCSVFormatsForSpanishSpreadsheets(t *testing.T) {
	entries := sampleEntries(1)
	entries[0].Meta = map[string]any{"total_gross": 60.5, "lines": 2}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "Fecha;Usuario"))
	require.Contains(t, lines[1], "01/04/2024 09:00:00")
	require.Contains(t, lines[1], "admin")
	// es-ES decimals use a comma.
	require.Contains(t, lines[1], "total_gross=60,50")
}
