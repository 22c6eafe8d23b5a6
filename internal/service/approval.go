package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

// Decision is the outcome of approving a group at a given instant.
type Decision struct {
	Status        domain.PostStatus
	PublishedDate *time.Time
}

// Decide publishes immediately when the scheduled date is not in the future,
// otherwise it schedules.
func Decide(scheduled, now time.Time) Decision {
	if !scheduled.After(now) {
		published := now
		return Decision{Status: domain.StatusPublished, PublishedDate: &published}
	}
	return Decision{Status: domain.StatusScheduled}
}

// Approve moves a group out of review. Approving again recomputes the decision.
func (s *PostGroupService) Approve(ctx context.Context, id string) (*domain.PostGroup, error) {
	g, err := s.store.GetPostGroupByID(ctx, id)
	if err != nil {
		recordApproval(outcomeFor(err))
		return nil, fmt.Errorf("approve post group: %w", err)
	}

	now := s.clock.Now().UTC()
	d := Decide(g.ScheduledDate, now)
	g.Status = d.Status
	g.PublishedDate = d.PublishedDate

	saved, err := s.store.SavePostGroup(ctx, g)
	if err != nil {
		recordApproval(outcomeFor(err))
		s.logger.ErrorContext(ctx, "failed to save approved post group",
			slog.String("post_group_id", id),
			slog.Any("error", err))
		return nil, fmt.Errorf("approve post group %s: %w", id, err)
	}

	recordApproval(string(saved.Status))
	s.logger.InfoContext(ctx, "post group approved",
		slog.String("post_group_id", saved.ID),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, storage.ErrConcurrentModification):
		return outcomeConflict
	default:
		return outcomeError
	}
}
