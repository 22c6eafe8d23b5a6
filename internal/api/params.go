package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
)

const maxTextLength = 3000

// parseArgs reads first, last, after and before from the query string.
// Range checks are left to pagination.Args.Validate.
func parseArgs(r *http.Request) (pagination.Args, error) {
	q := r.URL.Query()
	var args pagination.Args

	first, err := intParam(q, "first")
	if err != nil {
		return args, err
	}
	last, err := intParam(q, "last")
	if err != nil {
		return args, err
	}
	args.First = first
	args.Last = last
	args.After = stringParam(q, "after")
	args.Before = stringParam(q, "before")
	return args, nil
}

func intParam(q url.Values, name string) (*int, error) {
	if !q.Has(name) {
		return nil, nil
	}
	n, err := strconv.Atoi(q.Get(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q argument must be an integer", pagination.ErrInvalidPaginationArgs, name)
	}
	return &n, nil
}

func stringParam(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

// parseFilter reads status, statuses, category and categories. Sets are comma separated.
func parseFilter(r *http.Request) (*query.Filter, error) {
	q := r.URL.Query()
	var (
		f   query.Filter
		err error
	)

	if v := q.Get("status"); v != "" {
		s, err := domain.ParsePostStatus(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
		}
		f.Status = &s
	}
	if f.Statuses, err = parseList(q.Get("statuses"), domain.ParsePostStatus); err != nil {
		return nil, err
	}
	if v := q.Get("category"); v != "" {
		c, err := domain.ParseCategory(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
		}
		f.Category = &c
	}
	if f.Categories, err = parseList(q.Get("categories"), domain.ParseCategory); err != nil {
		return nil, err
	}
	return &f, nil
}

func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	if raw == "" {
		return nil, nil
	}
	var out []T
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parse(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// validateCreateInput checks the shape of a new post group and canonicalizes its enums.
func validateCreateInput(in *domain.CreatePostGroupInput) error {
	switch {
	case strings.TrimSpace(in.Content) == "":
		return fmt.Errorf("%w: content is required", errInvalidInput)
	case len(in.Content) > maxTextLength:
		return fmt.Errorf("%w: content must be at most %d characters", errInvalidInput, maxTextLength)
	case in.ScheduledDate.IsZero():
		return fmt.Errorf("%w: scheduledDate is required", errInvalidInput)
	case len(in.Posts) == 0:
		return fmt.Errorf("%w: at least one post is required", errInvalidInput)
	}

	category, err := domain.ParseCategory(string(in.Category))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	in.Category = category

	for i := range in.Posts {
		p := &in.Posts[i]
		platform, err := domain.ParsePlatform(string(p.Platform))
		if err != nil {
			return fmt.Errorf("%w: posts[%d]: %v", errInvalidInput, i, err)
		}
		p.Platform = platform
		if len(p.Caption) > maxTextLength {
			return fmt.Errorf("%w: posts[%d]: caption must be at most %d characters", errInvalidInput, i, maxTextLength)
		}
	}
	for i, u := range in.MediaURLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("%w: mediaUrls[%d] cannot be empty", errInvalidInput, i)
		}
	}
	return nil
}
