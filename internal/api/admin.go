package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/models"
	"github.com/neezar-abd/nzardev/internal/pages"
	"github.com/neezar-abd/nzardev/internal/slugify"
)

const maxBannerBytes = 10 << 20 // 10 MB

// EventPublisher receives content change notifications from admin writes.
type EventPublisher interface {
	PublishPostEvent(kind, slug string)
}

// AdminHandler holds the admin dashboard route handlers.
type AdminHandler struct {
	content   *content.Service
	pages     *pages.Service
	events    EventPublisher
	assetsDir string
}

// NewAdminHandler creates an AdminHandler. events may be nil.
func NewAdminHandler(contentSvc *content.Service, pagesSvc *pages.Service, events EventPublisher, assetsDir string) *AdminHandler {
	return &AdminHandler{content: contentSvc, pages: pagesSvc, events: events, assetsDir: assetsDir}
}

func (h *AdminHandler) publish(kind, slug string) {
	if h.events != nil {
		h.events.PublishPostEvent(kind, slug)
	}
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return PostRequest{}, false
	}
	return req, true
}

// ListMDXBlogs handles GET /api/admin/blogs.
func (h *AdminHandler) ListMDXBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.MDXPosts(r.Context(), models.TypeBlog)
	if err != nil {
		writeError(w, err, "list mdx blogs")
		return
	}
	writeJSON(w, http.StatusOK, BlogListResponse{Posts: posts, Total: len(posts)})
}

// CreateMDXBlog handles POST /api/admin/blogs.
//
//	@Summary		Create a post as a rendered .mdx file
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PostRequest	true	"Post to create"
//	@Success		201		{object}	PostDetail
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/blogs [post]
func (h *AdminHandler) CreateMDXBlog(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	post, err := h.content.CreateMDXPost(r.Context(), req.params())
	if err != nil {
		writeError(w, err, "create mdx blog")
		return
	}
	h.publish("created", post.Slug)
	writeJSON(w, http.StatusCreated, post)
}

// GetMDXBlog handles GET /api/admin/blogs/{slug}.
func (h *AdminHandler) GetMDXBlog(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.GetPost(r.Context(), slugParam(r))
	if err != nil {
		writeError(w, err, "get mdx blog")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetMDXBlogContent handles GET /api/admin/blogs/{slug}/content. It
// returns the raw markdown body for the editor.
func (h *AdminHandler) GetMDXBlogContent(w http.ResponseWriter, r *http.Request) {
	body, err := h.content.MDXContent(r.Context(), slugParam(r))
	if err != nil {
		writeError(w, err, "get mdx content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": body})
}

// UpdateMDXBlog handles PUT /api/admin/blogs/{slug}.
func (h *AdminHandler) UpdateMDXBlog(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	slug := slugParam(r)
	post, err := h.content.UpdateMDXPost(r.Context(), slug, req.params())
	if err != nil {
		writeError(w, err, "update mdx blog")
		return
	}
	h.publish("updated", slug)
	writeJSON(w, http.StatusOK, post)
}

// DeleteMDXBlog handles DELETE /api/admin/blogs/{slug}.
func (h *AdminHandler) DeleteMDXBlog(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if err := h.content.DeleteMDXPost(r.Context(), slug); err != nil {
		writeError(w, err, "delete mdx blog")
		return
	}
	h.publish("deleted", slug)
	w.WriteHeader(http.StatusNoContent)
}

// ListFirestoreBlogs handles GET /api/admin/blogs/firestore.
func (h *AdminHandler) ListFirestoreBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.FirestorePosts(r.Context())
	if err != nil {
		writeError(w, err, "list firestore blogs")
		return
	}
	writeJSON(w, http.StatusOK, BlogListResponse{Posts: posts, Total: len(posts)})
}

// CreateFirestoreBlog handles POST /api/admin/blogs/firestore.
func (h *AdminHandler) CreateFirestoreBlog(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	post, err := h.content.CreateFirestorePost(r.Context(), req.params())
	if err != nil {
		writeError(w, err, "create firestore blog")
		return
	}
	h.publish("created", post.Slug)
	writeJSON(w, http.StatusCreated, post)
}

// GetFirestoreBlog handles GET /api/admin/blogs/firestore/{slug}.
func (h *AdminHandler) GetFirestoreBlog(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.GetPost(r.Context(), slugParam(r))
	if err != nil {
		writeError(w, err, "get firestore blog")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// UpdateFirestoreBlog handles PUT /api/admin/blogs/firestore/{slug}.
func (h *AdminHandler) UpdateFirestoreBlog(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}
	slug := slugParam(r)
	post, err := h.content.UpdateFirestorePost(r.Context(), slug, req.params())
	if err != nil {
		writeError(w, err, "update firestore blog")
		return
	}
	h.publish("updated", slug)
	writeJSON(w, http.StatusOK, post)
}

// DeleteFirestoreBlog handles DELETE /api/admin/blogs/firestore/{slug}.
func (h *AdminHandler) DeleteFirestoreBlog(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if err := h.content.DeleteFirestorePost(r.Context(), slug); err != nil {
		writeError(w, err, "delete firestore blog")
		return
	}
	h.publish("deleted", slug)
	w.WriteHeader(http.StatusNoContent)
}

// GetHomePage handles GET /api/admin/pages/home.
func (h *AdminHandler) GetHomePage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.pages.Home())
}

// SetHomePage handles PUT /api/admin/pages/home.
func (h *AdminHandler) SetHomePage(w http.ResponseWriter, r *http.Request) {
	var payload pages.HomeContent
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.pages.SetHome(payload); err != nil {
		writeError(w, err, "set home page")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// GetAboutPage handles GET /api/admin/pages/about.
func (h *AdminHandler) GetAboutPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.pages.About())
}

// SetAboutPage handles PUT /api/admin/pages/about.
func (h *AdminHandler) SetAboutPage(w http.ResponseWriter, r *http.Request) {
	var payload pages.AboutContent
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.pages.SetAbout(payload); err != nil {
		writeError(w, err, "set about page")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// Statistics handles GET /api/admin/statistics.
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.AllStatistics(r.Context())
	if err != nil {
		writeError(w, err, "statistics")
		return
	}
	data, err := h.content.AllData(r.Context())
	if err != nil {
		writeError(w, err, "statistics data")
		return
	}
	writeJSON(w, http.StatusOK, StatisticsResponse{Statistics: stats, Data: data})
}

// safeBannerName validates that the filename is a plain name (no path
// separators, no traversal).
func safeBannerName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return cleaned, nil
}

// UploadBanner handles POST /api/admin/upload-banner
// (multipart/form-data, fields "file" and "slug").
func (h *AdminHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBannerBytes)

	if err := r.ParseMultipartForm(maxBannerBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	slug := slugify.Normalize(r.FormValue("slug"))
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	name, err := safeBannerName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	dir := filepath.Join(h.assetsDir, "blog", slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create assets dir"))
		return
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create file"))
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to write file"))
		return
	}

	writeJSON(w, http.StatusCreated, BannerUploadResponse{
		Filename: name,
		Size:     written,
		URL:      fmt.Sprintf("/assets/blog/%s/%s", slug, name),
	})
}
