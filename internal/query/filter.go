// Package query turns optional list filters into predicates that both the
// in-memory and the SQL row stores understand.
package query

import (
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/UkralStul/post-scheduler/internal/domain"
)

// Filter holds optional criteria for listing post groups. For each dimension a
// non-empty set takes precedence over the single value.
type Filter struct {
	Status     *domain.PostStatus
	Statuses   []domain.PostStatus
	Category   *domain.Category
	Categories []domain.Category
}

// Predicate is a resolved filter: a conjunction of set-membership tests.
// A nil set means the dimension is unconstrained.
type Predicate struct {
	Statuses   []domain.PostStatus
	Categories []domain.Category
}

// Predicate resolves the filter. A nil filter matches every row.
func (f *Filter) Predicate() Predicate {
	if f == nil {
		return Predicate{}
	}
	return Predicate{
		Statuses:   pick(f.Statuses, f.Status),
		Categories: pick(f.Categories, f.Category),
	}
}

func pick[T any](set []T, single *T) []T {
	if len(set) > 0 {
		return slices.Clone(set)
	}
	if single != nil {
		return []T{*single}
	}
	return nil
}

// StatusIs matches groups in exactly one status.
func StatusIs(s domain.PostStatus) Predicate {
	return Predicate{Statuses: []domain.PostStatus{s}}
}

// IsUniversal reports whether the predicate matches every row.
func (p Predicate) IsUniversal() bool {
	return p.Statuses == nil && p.Categories == nil
}

// Matches evaluates the predicate against one group.
func (p Predicate) Matches(g *domain.PostGroup) bool {
	if p.Statuses != nil && !slices.Contains(p.Statuses, g.Status) {
		return false
	}
	if p.Categories != nil && !slices.Contains(p.Categories, g.Category) {
		return false
	}
	return true
}

// Sqlizer renders the predicate for the post_groups table.
func (p Predicate) Sqlizer() sq.Sqlizer {
	and := sq.And{}
	if p.Statuses != nil {
		and = append(and, sq.Eq{"status": toStrings(p.Statuses)})
	}
	if p.Categories != nil {
		and = append(and, sq.Eq{"category": toStrings(p.Categories)})
	}
	return and
}

func toStrings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
