package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/service"
	"github.com/UkralStul/post-scheduler/internal/storage"
	"github.com/UkralStul/post-scheduler/internal/storage/inmemory"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type connectionResponse struct {
	Edges []struct {
		Node   domain.PostGroup `json:"node"`
		Cursor string           `json:"cursor"`
	} `json:"edges"`
	PageInfo   pagination.PageInfo `json:"pageInfo"`
	TotalCount int64               `json:"totalCount"`
}

// setupServer seeds n groups one minute apart; even ones are pending review.
func setupServer(t *testing.T, n int) (http.Handler, []*domain.PostGroup) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(now)
	store := inmemory.NewWithClock(clock)

	var created []*domain.PostGroup
	for i := 0; i < n; i++ {
		status := domain.StatusPendingReview
		if i%2 == 1 {
			status = domain.StatusScheduled
		}
		g, err := store.CreatePostGroup(context.Background(), &domain.PostGroup{
			Content:       fmt.Sprintf("group %d", i),
			MediaURLs:     []string{},
			Category:      domain.CategoryEducation,
			Status:        status,
			ScheduledDate: now.Add(-time.Hour),
			Posts:         []*domain.Post{{Platform: domain.PlatformFacebook, Caption: "fb"}},
		})
		require.NoError(t, err)
		created = append(created, g)
		clock.Advance(time.Minute)
	}

	svc := service.NewPostGroupService(store, clock, nil)
	return NewRouter(NewHandler(svc, nil), store), created
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListPostGroups(t *testing.T) {
	h, created := setupServer(t, 5)

	rec := do(t, h, http.MethodGet, "/post-groups?first=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[connectionResponse](t, rec)
	assert.Equal(t, int64(5), resp.TotalCount)
	require.Len(t, resp.Edges, 2)
	assert.Equal(t, created[4].ID, resp.Edges[0].Node.ID)
	assert.Equal(t, created[3].ID, resp.Edges[1].Node.ID)
	assert.Len(t, resp.Edges[0].Node.Posts, 1)
	assert.True(t, resp.PageInfo.HasNextPage)
	require.NotNil(t, resp.PageInfo.EndCursor)

	rec = do(t, h, http.MethodGet, "/post-groups?first=10&after="+*resp.PageInfo.EndCursor, "")
	require.Equal(t, http.StatusOK, rec.Code)
	next := decode[connectionResponse](t, rec)
	require.Len(t, next.Edges, 3)
	assert.Equal(t, created[2].ID, next.Edges[0].Node.ID)
	assert.True(t, next.PageInfo.HasPreviousPage)
	assert.False(t, next.PageInfo.HasNextPage)
}

func TestListPostGroups_Filter(t *testing.T) {
	h, _ := setupServer(t, 5)

	rec := do(t, h, http.MethodGet, "/post-groups?status=scheduled", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[connectionResponse](t, rec)
	assert.Equal(t, int64(2), resp.TotalCount)
	for _, e := range resp.Edges {
		assert.Equal(t, domain.StatusScheduled, e.Node.Status)
	}

	rec = do(t, h, http.MethodGet, "/post-groups?statuses=PUBLISHED,PENDING_REVIEW&categories=EDUCATION", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[connectionResponse](t, rec).TotalCount)
}

func TestListPendingReview(t *testing.T) {
	h, _ := setupServer(t, 5)

	rec := do(t, h, http.MethodGet, "/post-groups/pending-review", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[connectionResponse](t, rec)
	assert.Equal(t, int64(3), resp.TotalCount)
	for _, e := range resp.Edges {
		assert.Equal(t, domain.StatusPendingReview, e.Node.Status)
	}
}

func TestListPostGroups_BadRequests(t *testing.T) {
	h, _ := setupServer(t, 1)

	tests := []struct {
		name    string
		target  string
		wantMsg string
	}{
		{name: "first and last", target: "/post-groups?first=1&last=1", wantMsg: `cannot provide both "first" and "last" arguments`},
		{name: "after and before", target: "/post-groups?after=a&before=b", wantMsg: `cannot provide both "after" and "before" arguments`},
		{name: "first too large", target: "/post-groups?first=101", wantMsg: `"first" argument must be between 0 and 100`},
		{name: "negative last", target: "/post-groups/pending-review?last=-1", wantMsg: `"last" argument must be between 0 and 100`},
		{name: "non numeric first", target: "/post-groups?first=ten", wantMsg: "must be an integer"},
		{name: "malformed cursor", target: "/post-groups?after=%25%25%25", wantMsg: "malformed cursor"},
		{name: "unknown status", target: "/post-groups?status=DRAFT", wantMsg: "invalid post status"},
		{name: "unknown category in set", target: "/post-groups?categories=EDUCATION,SPORTS", wantMsg: "invalid category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tt.wantMsg)
		})
	}
}

func TestGetPostGroup(t *testing.T) {
	h, created := setupServer(t, 1)

	rec := do(t, h, http.MethodGet, "/post-groups/"+created[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	g := decode[domain.PostGroup](t, rec)
	assert.Equal(t, created[0].ID, g.ID)
	assert.Len(t, g.Posts, 1)

	rec = do(t, h, http.MethodGet, "/post-groups/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePostGroup(t *testing.T) {
	h, _ := setupServer(t, 0)

	body := `{
		"content": "Spring sale",
		"mediaUrls": ["https://cdn.example.com/sale.png"],
		"category": "entertainment",
		"scheduledDate": "2024-07-01T09:00:00Z",
		"posts": [{"platform": "instagram", "caption": "ig"}, {"platform": "LINKEDIN", "caption": "li"}]
	}`
	rec := do(t, h, http.MethodPost, "/post-groups", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	g := decode[domain.PostGroup](t, rec)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, domain.StatusPendingReview, g.Status)
	assert.Equal(t, domain.CategoryEntertainment, g.Category)
	require.Len(t, g.Posts, 2)
	assert.Equal(t, domain.PlatformInstagram, g.Posts[0].Platform)

	rec = do(t, h, http.MethodGet, "/post-groups/pending-review", "")
	assert.Equal(t, int64(1), decode[connectionResponse](t, rec).TotalCount)
}

func TestCreatePostGroup_Invalid(t *testing.T) {
	h, _ := setupServer(t, 0)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"content":`},
		{name: "unknown field", body: `{"content":"x","color":"red"}`},
		{name: "empty content", body: `{"content":" ","category":"EDUCATION","scheduledDate":"2024-07-01T09:00:00Z","posts":[{"platform":"FACEBOOK","caption":"x"}]}`},
		{name: "unknown category", body: `{"content":"x","category":"SPORTS","scheduledDate":"2024-07-01T09:00:00Z","posts":[{"platform":"FACEBOOK","caption":"x"}]}`},
		{name: "missing date", body: `{"content":"x","category":"EDUCATION","posts":[{"platform":"FACEBOOK","caption":"x"}]}`},
		{name: "no posts", body: `{"content":"x","category":"EDUCATION","scheduledDate":"2024-07-01T09:00:00Z","posts":[]}`},
		{name: "unknown platform", body: `{"content":"x","category":"EDUCATION","scheduledDate":"2024-07-01T09:00:00Z","posts":[{"platform":"TIKTOK","caption":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/post-groups", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestApprovePostGroup(t *testing.T) {
	h, created := setupServer(t, 1)

	rec := do(t, h, http.MethodPost, "/post-groups/"+created[0].ID+"/approve", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g := decode[domain.PostGroup](t, rec)
	assert.Equal(t, domain.StatusPublished, g.Status)
	assert.NotNil(t, g.PublishedDate)

	rec = do(t, h, http.MethodPost, "/post-groups/not-a-real-id/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	h, _ := setupServer(t, 5)

	rec := do(t, h, http.MethodGet, "/post-groups/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.Stats{Planned: 3, Pending: 3, Scheduled: 2}, decode[service.Stats](t, rec))
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := setupServer(t, 0)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	do(t, h, http.MethodGet, "/post-groups?first=1", "")
	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "post_groups_pagination_requests_total")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("list: %w", pagination.ErrInvalidPaginationArgs), http.StatusBadRequest},
		{fmt.Errorf("list: %w", pagination.ErrMalformedCursor), http.StatusBadRequest},
		{fmt.Errorf("body: %w", errInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("approve: %w", storage.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("approve: %w", storage.ErrConcurrentModification), http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
