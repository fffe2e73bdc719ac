// Package models defines the domain types shared across the site backend.
package models

// Origin identifies which backing store is authoritative for a post.
type Origin string

const (
	// OriginMDX marks posts owned by .mdx files on disk.
	OriginMDX Origin = "mdx"
	// OriginFirestore marks posts owned by the document store.
	OriginFirestore Origin = "firestore"
)

// ContentType is a top-level content category.
type ContentType string

const (
	TypeBlog     ContentType = "blog"
	TypeProjects ContentType = "projects"
)

// ValidContentTypes lists every content type counters are kept for.
var ValidContentTypes = []ContentType{TypeBlog, TypeProjects}

// Banner is a structured reference to a post's banner image.
type Banner struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Post is the origin-agnostic representation of a piece of content.
// Tags are always a normalized list by the time a Post leaves the
// ingestion boundary, regardless of how the raw source encodes them.
type Post struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	PublishedAt   string   `json:"publishedAt"`
	LastUpdatedAt string   `json:"lastUpdatedAt,omitempty"`
	Banner        Banner   `json:"banner"`
	BannerAlt     string   `json:"bannerAlt,omitempty"`
	BannerLink    string   `json:"bannerLink,omitempty"`
	ReadTime      string   `json:"readTime"`
	Origin        Origin   `json:"origin"`
	Views         int      `json:"views"`
}

// EngagementCounter is the per-slug views/likes side-record, decoupled
// from the content record itself. LikesBy prevents double counting.
type EngagementCounter struct {
	Slug    string          `json:"slug"`
	Type    ContentType     `json:"type"`
	Views   int             `json:"views"`
	Likes   int             `json:"likes"`
	LikesBy map[string]bool `json:"likesBy"`
}

// ContentStatistics is a point-in-time per-type engagement snapshot.
type ContentStatistics struct {
	Type       ContentType `json:"type"`
	TotalPosts int         `json:"totalPosts"`
	TotalViews int         `json:"totalViews"`
	TotalLikes int         `json:"totalLikes"`
}

// ContentColumn is one row of the admin statistics table.
type ContentColumn struct {
	Slug  string `json:"slug"`
	Views int    `json:"views"`
	Likes int    `json:"likes"`
}

// ContentData groups per-slug engagement rows under a content type.
type ContentData struct {
	Type ContentType     `json:"type"`
	Data []ContentColumn `json:"data"`
}
