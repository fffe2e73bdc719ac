// Package storage defines the content file-system abstraction.
package storage

import "time"

// FileMeta is a lightweight description of one content file.
// The filename minus its extension is the candidate slug.
type FileMeta struct {
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for content file operations. Paths are
// relative to the content root (e.g. "blog/hello-world.mdx").
type Provider interface {
	// List returns metadata for every .mdx file under dir.
	List(dir string) ([]FileMeta, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
