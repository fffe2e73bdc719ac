// Package pages manages the JSON-backed home and about page payloads.
package pages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/neezar-abd/nzardev/internal/apperr"
)

// HomeContent is the landing page payload.
type HomeContent struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ResumeLink   string `json:"resumeLink"`
	LinkedinLink string `json:"linkedinLink"`
	GithubLink   string `json:"githubLink"`
}

func (c HomeContent) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Name, validation.Required),
	)
	if err != nil {
		return apperr.Validation("%s", err.Error())
	}
	return nil
}

// Certification is a single entry on the about page.
type Certification struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	Date          string `json:"date"`
	ImageURL      string `json:"imageUrl"`
	CredentialURL string `json:"credentialUrl,omitempty"`
	Description   string `json:"description,omitempty"`
}

// AboutContent is the about page payload.
type AboutContent struct {
	Title          string          `json:"title"`
	Name           string          `json:"name"`
	Content        string          `json:"content"`
	TechStack      []string        `json:"techStack"`
	Certifications []Certification `json:"certifications"`
}

func (c AboutContent) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Content, validation.Required),
	)
	if err != nil {
		return apperr.Validation("%s", err.Error())
	}
	return nil
}

// DefaultHome is served until an admin saves a home payload.
func DefaultHome() HomeContent {
	return HomeContent{
		Title:        "Hi!",
		Subtitle:     "I'm Risal - Full Stack Developer",
		Description:  "I'm a self-taught Software Engineer turned Full Stack Developer. I enjoy working with TypeScript, React, and Node.js. I also love exploring new technologies and learning new things.",
		Name:         "Risal",
		Role:         "Full Stack Developer",
		ResumeLink:   "",
		LinkedinLink: "https://linkedin.com/in/risalamin",
		GithubLink:   "https://github.com/risalamin",
	}
}

// DefaultAbout is served until an admin saves an about payload.
func DefaultAbout() AboutContent {
	return AboutContent{
		Title: "About",
		Name:  "Risal Amin",
		Content: "Hi, I'm Risal. I started learning web development in November 2021, after building my first web app with Python and the Streamlit module. Since then, I've been dedicated to learning as much as I can about web development.\n\n" +
			"I began my journey by completing the front-end course on FreeCodeCamp and then moved on to The Odin Project to learn fullstack development. I'm always motivated to learn new technologies and techniques, and I enjoy getting feedback to help me improve.\n\n" +
			"On this website, I'll be sharing my projects and writing about what I've learned. I believe that writing helps me better understand and retain new information, and I'm always happy to share my knowledge with others. If you have any questions or want to connect, don't hesitate to reach out!",
		TechStack: []string{"Next.js", "TypeScript", "Firebase", "TailwindCSS"},
		Certifications: []Certification{
			{
				ID:            "1",
				Title:         "Example Certification",
				Issuer:        "Example Institution",
				Date:          "2024-01-01",
				ImageURL:      "/assets/certifications/example-cert.jpg",
				CredentialURL: "https://example.com/credential",
				Description:   "Example certification description",
			},
		},
	}
}

// Service reads and writes the page payloads as JSON files under dir.
// A missing or unreadable file falls back to the default payload.
type Service struct {
	dir string
	mu  sync.RWMutex
}

func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pages: create dir: %w", err)
	}
	return &Service{dir: dir}, nil
}

func (s *Service) Home() HomeContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content := DefaultHome()
	s.load("home.json", &content)
	return content
}

func (s *Service) About() AboutContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content := DefaultAbout()
	s.load("about.json", &content)
	return content
}

func (s *Service) SetHome(content HomeContent) error {
	if err := content.Validate(); err != nil {
		return err
	}
	return s.save("home.json", content)
}

func (s *Service) SetAbout(content AboutContent) error {
	if err := content.Validate(); err != nil {
		return err
	}
	return s.save("about.json", content)
}

// load decodes name into v when the file exists; on any failure v keeps
// its default value.
func (s *Service) load(name string, v any) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}

func (s *Service) save(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("pages: encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".nzar-tmp-*")
	if err != nil {
		return fmt.Errorf("pages: write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("pages: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pages: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("pages: write %s: %w", name, err)
	}
	return nil
}
