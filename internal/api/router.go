package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/guestbook"
	"github.com/neezar-abd/nzardev/internal/pages"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Content   *content.Service
	Guestbook *guestbook.Service
	Pages     *pages.Service
	Events    EventPublisher
	// SSEHandler, if non-nil, is mounted at GET /api/events.
	SSEHandler http.Handler
	AssetsDir  string
	Gate       GateConfig
	// Ready backs GET /health/ready.
	Ready func() error
}

// NewRouter creates a chi router with all routes mounted. The engagement
// endpoints sit behind the access gate, the admin surface behind the
// admin bearer check, everything else is public.
func NewRouter(deps RouterDeps) chi.Router {
	h := NewHandler(deps.Content, deps.Guestbook, deps.Ready)
	ah := NewAdminHandler(deps.Content, deps.Pages, deps.Events, deps.AssetsDir)

	r := chi.NewRouter()

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		// Public content surface.
		r.Get("/blog", h.ListBlog)
		r.Get("/blog/{slug}", h.GetBlog)

		// Guestbook: reading and writing are public, deletion needs the
		// admin token.
		r.Get("/guestbook", h.ListGuestbook)
		r.Post("/guestbook", h.CreateGuestbookEntry)
		r.Group(func(r chi.Router) {
			r.Use(AdminAuth(deps.Gate))
			r.Delete("/guestbook", h.ClearGuestbook)
			r.Delete("/guestbook/{id}", h.DeleteGuestbookEntry)
		})

		// Engagement counters behind the access gate.
		r.Group(func(r chi.Router) {
			r.Use(AccessGate(deps.Gate))
			r.Post("/views/{slug}", h.IncrementView)
			r.Post("/likes/{slug}", h.ToggleLike)
		})

		if deps.SSEHandler != nil {
			r.Get("/events", deps.SSEHandler.ServeHTTP)
		}

		// Admin dashboard surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuth(deps.Gate))

			r.Get("/blogs", ah.ListMDXBlogs)
			r.Post("/blogs", ah.CreateMDXBlog)
			r.Get("/blogs/firestore", ah.ListFirestoreBlogs)
			r.Post("/blogs/firestore", ah.CreateFirestoreBlog)
			r.Get("/blogs/firestore/{slug}", ah.GetFirestoreBlog)
			r.Put("/blogs/firestore/{slug}", ah.UpdateFirestoreBlog)
			r.Delete("/blogs/firestore/{slug}", ah.DeleteFirestoreBlog)
			r.Get("/blogs/{slug}", ah.GetMDXBlog)
			r.Get("/blogs/{slug}/content", ah.GetMDXBlogContent)
			r.Put("/blogs/{slug}", ah.UpdateMDXBlog)
			r.Delete("/blogs/{slug}", ah.DeleteMDXBlog)

			r.Get("/pages/home", ah.GetHomePage)
			r.Put("/pages/home", ah.SetHomePage)
			r.Get("/pages/about", ah.GetAboutPage)
			r.Put("/pages/about", ah.SetAboutPage)

			r.Post("/upload-banner", ah.UploadBanner)
			r.Get("/statistics", ah.Statistics)
		})
	})

	return r
}
