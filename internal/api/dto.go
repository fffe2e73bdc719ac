package api

import (
	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/guestbook"
	"github.com/neezar-abd/nzardev/internal/models"
)

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = content.PostDetail

// BlogListResponse wraps the merged blog listing.
type BlogListResponse struct {
	Posts []models.Post `json:"posts" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// PostRequest is the request body for creating or updating a post in
// either origin.
type PostRequest struct {
	Slug        string   `json:"slug,omitempty" example:"hello-world"`
	Title       string   `json:"title" example:"Hello World" validate:"required"`
	Description string   `json:"description" example:"A first post"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags" example:"go,web"`
	PublishedAt string   `json:"publishedAt" example:"2024-01-01"`
	BannerAlt   string   `json:"bannerAlt,omitempty"`
	BannerLink  string   `json:"bannerLink,omitempty"`
}

func (r PostRequest) params() content.PostParams {
	return content.PostParams{
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Tags:        r.Tags,
		PublishedAt: r.PublishedAt,
		BannerAlt:   r.BannerAlt,
		BannerLink:  r.BannerLink,
	}
}

// ViewsResponse is returned after a view increment.
type ViewsResponse struct {
	Views int `json:"views" example:"12" validate:"required"`
}

// LikeRequest carries the viewer identity for a like toggle.
type LikeRequest struct {
	ViewerID string `json:"viewerId" example:"device-abc123" validate:"required"`
}

// LikeResponse is returned after a like toggle.
type LikeResponse struct {
	Likes int  `json:"likes" example:"3" validate:"required"`
	Liked bool `json:"liked" example:"true" validate:"required"`
}

// GuestbookListResponse wraps the guestbook listing.
type GuestbookListResponse struct {
	Entries []models.GuestbookEntry `json:"entries" validate:"required"`
	Total   int                     `json:"total" example:"7" validate:"required"`
}

// GuestbookEntryRequest is the visitor submission payload.
type GuestbookEntryRequest = guestbook.EntryParams

// StatisticsResponse is the admin dashboard snapshot.
type StatisticsResponse struct {
	Statistics []models.ContentStatistics `json:"statistics" validate:"required"`
	Data       []models.ContentData       `json:"data" validate:"required"`
}

// BannerUploadResponse is returned after a successful banner upload.
type BannerUploadResponse struct {
	Filename string `json:"filename" example:"banner.jpg" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/assets/blog/hello-world/banner.jpg" validate:"required"`
}
