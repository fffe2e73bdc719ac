// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the portfolio content tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/guestbook"
)

// Server wraps the MCP server with content tools.
type Server struct {
	mcp       *server.MCPServer
	content   *content.Service
	guestbook *guestbook.Service
}

// New creates a new MCP server with all tools registered.
func New(contentSvc *content.Service, guestbookSvc *guestbook.Service) *Server {
	s := &Server{content: contentSvc, guestbook: guestbookSvc}

	s.mcp = server.NewMCPServer(
		"nzardev",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all blog posts from both origins, newest first, with view counts."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the full markdown body and metadata of a post."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. hello-world)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("create_post",
		mcp.WithDescription("Create a new blog post as an .mdx file. "+
			"The markdown body MUST follow the canonical post format. Read the contract "+
			"first via the get_post_contract tool or the nzardev://post-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Post title")),
		mcp.WithString("description", mcp.Description("Short summary for listings")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown body")),
		mcp.WithString("publishedAt", mcp.Description("Publication date, YYYY-MM-DD")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
	), s.createPost)

	s.mcp.AddTool(mcp.NewTool("get_post_contract",
		mcp.WithDescription("Returns the canonical post format contract. "+
			"Call this before creating posts to ensure correct structure."),
	), s.getPostContract)

	s.mcp.AddTool(mcp.NewTool("content_stats",
		mcp.WithDescription("Engagement statistics (posts, views, likes) per content type."),
	), s.contentStats)

	s.mcp.AddTool(mcp.NewTool("list_guestbook",
		mcp.WithDescription("List guestbook entries, newest first."),
	), s.listGuestbook)

	// Resource: post format contract.
	s.mcp.AddResource(
		mcp.NewResource("nzardev://post-format", "Post Format Contract",
			mcp.WithResourceDescription("Canonical blog post format that all created posts must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPosts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.content.AllBlogWithViews(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(posts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.content.GetPost(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	meta, _ := json.MarshalIndent(post.Post, "", "  ")
	return mcp.NewToolResultText(string(meta) + "\n\n" + post.Body), nil
}

func (s *Server) createPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := content.PostParams{
		Title:       title,
		Description: req.GetString("description", ""),
		Content:     body,
		PublishedAt: req.GetString("publishedAt", ""),
	}
	if tags := req.GetString("tags", ""); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				params.Tags = append(params.Tags, tag)
			}
		}
	}

	post, err := s.content.CreateMDXPost(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", post.Slug)), nil
}

func (s *Server) contentStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.content.AllStatistics(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listGuestbook(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.guestbook.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no guestbook entries"), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getPostContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "nzardev://post-format",
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
