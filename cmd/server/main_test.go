package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/service"
	"github.com/UkralStul/post-scheduler/internal/storage/inmemory"
)

func TestFillWithMockData(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewPostGroupService(inmemory.NewWithClock(clock), clock, log)
	ctx := context.Background()

	require.NoError(t, fillWithMockData(ctx, svc, clock, log))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &service.Stats{Planned: 2, Pending: 2, Scheduled: 1, Published: 2}, stats)

	// Одобренные группы прошли через Approve: версия увеличена.
	first := 100
	page, err := svc.ListAll(ctx, pagination.Args{First: &first}, nil)
	require.NoError(t, err)
	for _, g := range page.Nodes() {
		if g.Status == domain.StatusPendingReview {
			assert.Equal(t, int64(1), g.Version)
			continue
		}
		assert.Equal(t, int64(2), g.Version)
		assert.Equal(t, g.Status == domain.StatusPublished, g.PublishedDate != nil)
	}
}
