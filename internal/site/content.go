package site

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Sections are the page anchors, in nav order.
var Sections = []string{"Home", "About", "Projects", "Skills", "Achievements", "Contact"}

type Content struct {
	Profile      Profile       `yaml:"profile" json:"profile"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Skills       []SkillGroup  `yaml:"skills" json:"skills"`
	Achievements []Achievement `yaml:"achievements" json:"achievements"`
}

type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Title    string   `yaml:"title" json:"title"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	About    []string `yaml:"about" json:"about"`
	GitHub   string   `yaml:"github" json:"github"`
	Resume   string   `yaml:"resume" json:"resume"`
	Email    string   `yaml:"email" json:"email"`
	LinkedIn string   `yaml:"linkedin" json:"linkedin"`
}

type Project struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Logo         string   `yaml:"logo" json:"logo"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	GitHub       string   `yaml:"github" json:"github"`
}

// SkillGroup keeps categories ordered, which a YAML map would not.
type SkillGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

type Achievement struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// DefaultContent parses the embedded content file.
func DefaultContent() (*Content, error) {
	return parseContent(defaultContent)
}

// LoadContent reads a content file from disk. An empty path yields the
// embedded content.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return parseContent(data)
}

func parseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if strings.TrimSpace(c.Profile.Name) == "" {
		return nil, fmt.Errorf("parse content: profile.name is required")
	}
	return &c, nil
}
