package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/guestbook"
	"github.com/neezar-abd/nzardev/internal/slugify"
)

// Handler holds the public API route handlers.
type Handler struct {
	content   *content.Service
	guestbook *guestbook.Service
	ready     func() error
}

// NewHandler creates a new Handler. ready, when non-nil, backs the
// readiness probe.
func NewHandler(contentSvc *content.Service, guestbookSvc *guestbook.Service, ready func() error) *Handler {
	return &Handler{content: contentSvc, guestbook: guestbookSvc, ready: ready}
}

// slugParam extracts and normalizes the slug path parameter.
func slugParam(r *http.Request) string {
	return slugify.Normalize(chi.URLParam(r, "slug"))
}

// ListBlog handles GET /api/blog.
//
//	@Summary		List all blog posts from both origins, newest first
//	@Tags			blog
//	@Produce		json
//	@Success		200	{object}	BlogListResponse
//	@Router			/blog [get]
func (h *Handler) ListBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.AllBlogWithViews(r.Context())
	if err != nil {
		writeError(w, err, "list blog")
		return
	}
	writeJSON(w, http.StatusOK, BlogListResponse{Posts: posts, Total: len(posts)})
}

// GetBlog handles GET /api/blog/{slug}.
//
//	@Summary		Get a single post by slug
//	@Tags			blog
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug"
//	@Success		200		{object}	PostDetail
//	@Failure		404		{object}	errResponse
//	@Router			/blog/{slug} [get]
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	post, err := h.content.GetPost(r.Context(), slug)
	if err != nil {
		writeError(w, err, "get post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// IncrementView handles POST /api/views/{slug}.
//
//	@Summary		Record one view for a post
//	@Tags			engagement
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug"
//	@Success		200		{object}	ViewsResponse
//	@Security		BearerAuth
//	@Router			/views/{slug} [post]
func (h *Handler) IncrementView(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	views, err := h.content.IncrementView(r.Context(), slug)
	if err != nil {
		writeError(w, err, "increment view")
		return
	}
	writeJSON(w, http.StatusOK, ViewsResponse{Views: views})
}

// ToggleLike handles POST /api/likes/{slug}.
//
//	@Summary		Toggle the caller's like on a post
//	@Tags			engagement
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string		true	"Post slug"
//	@Param			body	body		LikeRequest	true	"Viewer identity"
//	@Success		200		{object}	LikeResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/likes/{slug} [post]
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.ViewerID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("viewerId is required"))
		return
	}
	likes, liked, err := h.content.ToggleLike(r.Context(), slug, req.ViewerID)
	if err != nil {
		writeError(w, err, "toggle like")
		return
	}
	writeJSON(w, http.StatusOK, LikeResponse{Likes: likes, Liked: liked})
}

// ListGuestbook handles GET /api/guestbook.
//
//	@Summary		List guestbook entries, newest first
//	@Tags			guestbook
//	@Produce		json
//	@Success		200	{object}	GuestbookListResponse
//	@Router			/guestbook [get]
func (h *Handler) ListGuestbook(w http.ResponseWriter, r *http.Request) {
	entries, err := h.guestbook.List(r.Context())
	if err != nil {
		writeError(w, err, "list guestbook")
		return
	}
	writeJSON(w, http.StatusOK, GuestbookListResponse{Entries: entries, Total: len(entries)})
}

// CreateGuestbookEntry handles POST /api/guestbook.
//
//	@Summary		Submit a guestbook entry
//	@Tags			guestbook
//	@Accept			json
//	@Produce		json
//	@Param			body	body		GuestbookEntryRequest	true	"Entry to create"
//	@Success		201		{object}	models.GuestbookEntry
//	@Failure		422		{object}	errResponse
//	@Router			/guestbook [post]
func (h *Handler) CreateGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req GuestbookEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	entry, err := h.guestbook.Create(r.Context(), req)
	if err != nil {
		writeError(w, err, "create guestbook entry")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// DeleteGuestbookEntry handles DELETE /api/guestbook/{id}.
//
//	@Summary		Delete a guestbook entry (development only)
//	@Tags			guestbook
//	@Param			id	path	string	true	"Entry ID"
//	@Success		204	"Entry deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/guestbook/{id} [delete]
func (h *Handler) DeleteGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	if err := h.guestbook.Delete(r.Context(), id); err != nil {
		writeError(w, err, "delete guestbook entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearGuestbook handles DELETE /api/guestbook. Disabled in production.
func (h *Handler) ClearGuestbook(w http.ResponseWriter, r *http.Request) {
	if err := h.guestbook.DeleteAll(r.Context()); err != nil {
		writeError(w, err, "clear guestbook")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
