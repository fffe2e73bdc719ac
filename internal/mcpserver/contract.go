package mcpserver

// PostFormatContract describes the canonical post format that LLM
// consumers should follow when creating posts.
const PostFormatContract = `# Post Format Contract

Every blog post created through the tools MUST follow these rules.

## Fields

- **title** (required): human-readable post title. The slug is derived
  from it: lowercase, runs of non-alphanumerics collapse to a single
  hyphen, leading/trailing hyphens trimmed.
- **description**: one or two sentences shown in listings.
- **publishedAt**: ISO-8601 date (YYYY-MM-DD). Drives sort order, newest
  first. Defaults to empty, which sorts last.
- **tags**: comma-separated, lowercase, kebab-case (e.g. ` + "`" + `go, web-dev` + "`" + `).

## Body

` + "```" + `markdown
Standard Markdown. GitHub-flavored tables and strikethrough are
supported. Headings get stable anchors automatically.
` + "```" + `

## Rules

1. **Do not include a metadata block in the body.** Metadata is passed
   as separate tool arguments; the server renders the canonical file.
2. **Slugs are unique across both content origins.** Creating a post
   whose derived slug already exists is rejected; pick another title.
3. **No raw HTML.** Post bodies are sanitized on render, so script tags
   and event handlers are stripped.
4. **Images** use absolute asset paths: ` + "`" + `![alt](/assets/blog/<slug>/banner.jpg)` + "`" + `.
5. **Encoding** is UTF-8.

## Example

` + "```" + `
title:       Shipping a Guestbook
description: Notes from adding a guestbook to the site.
publishedAt: 2024-03-01
tags:        go, sqlite
content:     |
  # Shipping a Guestbook

  The guestbook stores entries in a document collection...
` + "```" + `
`
