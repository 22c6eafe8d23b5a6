// Package api exposes the post group service over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UkralStul/post-scheduler/internal/dataloader"
	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
	"github.com/UkralStul/post-scheduler/internal/service"
)

const maxBodyBytes = 1 << 20

// PostGroupService is the use case surface the handlers need.
type PostGroupService interface {
	ListPendingReview(ctx context.Context, args pagination.Args) (*service.PostGroupConnection, error)
	ListAll(ctx context.Context, args pagination.Args, filter *query.Filter) (*service.PostGroupConnection, error)
	GetByID(ctx context.Context, id string) (*domain.PostGroup, error)
	Approve(ctx context.Context, id string) (*domain.PostGroup, error)
	Create(ctx context.Context, in domain.CreatePostGroupInput) (*domain.PostGroup, error)
	Stats(ctx context.Context) (*service.Stats, error)
}

type Handler struct {
	svc    PostGroupService
	logger *slog.Logger
}

func NewHandler(svc PostGroupService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) listPostGroups(w http.ResponseWriter, r *http.Request) {
	args, err := parseArgs(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	conn, err := h.svc.ListAll(r.Context(), args, filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondConnection(w, r, conn)
}

func (h *Handler) listPendingReview(w http.ResponseWriter, r *http.Request) {
	args, err := parseArgs(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	conn, err := h.svc.ListPendingReview(r.Context(), args)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondConnection(w, r, conn)
}

// respondConnection resolves posts for every node in one batch and writes the page.
func (h *Handler) respondConnection(w http.ResponseWriter, r *http.Request, conn *service.PostGroupConnection) {
	if loaders := dataloader.For(r.Context()); loaders != nil {
		if err := loaders.AttachPosts(r.Context(), conn.Nodes()); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, conn)
}

func (h *Handler) getPostGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if g == nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("post group %s not found", id)})
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (h *Handler) createPostGroup(w http.ResponseWriter, r *http.Request) {
	var in domain.CreatePostGroupInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		h.respondError(w, r, fmt.Errorf("%w: malformed JSON body: %v", errInvalidInput, err))
		return
	}
	if err := validateCreateInput(&in); err != nil {
		h.respondError(w, r, err)
		return
	}

	g, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (h *Handler) approvePostGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
