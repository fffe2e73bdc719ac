package mcpserver

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/guestbook"
	"github.com/neezar-abd/nzardev/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	_, files := testutil.TestContentRoot(t)
	docs := testutil.TestDocstore(t)
	logger := slog.Default()

	contentSvc := content.NewService(files, docs, logger)
	guestbookSvc := guestbook.NewService(docs, logger, false)
	return New(contentSvc, guestbookSvc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "create_post":
		result, err = srv.createPost(ctx, req)
	case "content_stats":
		result, err = srv.contentStats(ctx, req)
	case "list_guestbook":
		result, err = srv.listGuestbook(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadPost(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_post", map[string]any{
		"title":       "Hello World",
		"content":     "# Hello\n\nFirst post.",
		"publishedAt": "2024-01-01",
		"tags":        "go, web",
	})
	if text := resultText(r); text != "created: hello-world" {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_post", map[string]any{"slug": "hello-world"})
	text := resultText(r)
	if !strings.Contains(text, `"title": "Hello World"`) {
		t.Errorf("read result missing metadata: %q", text)
	}
	if !strings.Contains(text, "First post.") {
		t.Errorf("read result missing body: %q", text)
	}
}

func TestReadPostMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_post", map[string]any{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error for missing post")
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_post", map[string]any{
		"title":   "Same Title",
		"content": "a",
	})
	r := callTool(t, srv, "create_post", map[string]any{
		"title":   "Same Title",
		"content": "b",
	})
	if !r.IsError {
		t.Error("expected error for duplicate slug")
	}
}

func TestListPosts(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_post", map[string]any{
		"title":   "Listed",
		"content": "body",
	})

	r := callTool(t, srv, "list_posts", map[string]any{})
	if text := resultText(r); !strings.Contains(text, `"slug": "listed"`) {
		t.Errorf("list = %q", text)
	}
}

func TestContentStats(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "content_stats", map[string]any{})
	if text := resultText(r); !strings.Contains(text, "totalPosts") {
		t.Errorf("stats = %q", text)
	}
}

func TestListGuestbookEmpty(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_guestbook", map[string]any{})
	if text := resultText(r); text != "no guestbook entries" {
		t.Errorf("guestbook = %q", text)
	}
}
