package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML documents. When
// fsys is nil or holds no documents the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{pages: make(map[string]Page)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for id, raw := range doc.Pages {
			id = strings.TrimSpace(id)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty page id", path)
			}
			if _, exists := store.pages[id]; exists {
				return fmt.Errorf("uischema: duplicate page %q (file %s)", id, path)
			}
			store.pages[id] = normalisePage(raw, id, path)
		}

		for _, link := range doc.Nav {
			label := strings.TrimSpace(link.Label)
			href := strings.TrimSpace(link.Href)
			if label == "" || href == "" {
				return fmt.Errorf("uischema: file %s defines an incomplete nav link", path)
			}
			store.nav = append(store.nav, Link{Label: label, Href: href})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Page returns the configuration for id.
func (s *Store) Page(id string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	page, ok := s.pages[id]
	return page, ok
}

// PageOrDefault returns the page for id or an empty page carrying only the id.
func (s *Store) PageOrDefault(id string) Page {
	if page, ok := s.Page(id); ok {
		return page
	}
	return Page{ID: id}
}

// Nav returns the navigation links in document order.
func (s *Store) Nav() []Link {
	if s == nil {
		return nil
	}
	return append([]Link(nil), s.nav...)
}

// Empty reports whether the store holds any page.
func (s *Store) Empty() bool {
	return s == nil || len(s.pages) == 0
}

type documentFile struct {
	Nav   []Link          `json:"nav" yaml:"nav"`
	Pages map[string]Page `json:"pages" yaml:"pages"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normalisePage(raw Page, id, source string) Page {
	page := Page{
		ID:       id,
		Source:   source,
		Title:    strings.TrimSpace(raw.Title),
		Subtitle: strings.TrimSpace(raw.Subtitle),
		Icon:     sanitizeIconMarkup(raw.Icon),
		Actions:  append([]ActionConfig(nil), raw.Actions...),
	}
	if len(raw.Fields) > 0 {
		page.Fields = make(map[string]FieldConfig, len(raw.Fields))
		for name, cfg := range raw.Fields {
			key := strings.TrimSpace(name)
			if key == "" {
				continue
			}
			page.Fields[key] = FieldConfig{
				Label:       strings.TrimSpace(cfg.Label),
				Placeholder: strings.TrimSpace(cfg.Placeholder),
				HelpText:    strings.TrimSpace(cfg.HelpText),
				CSSClass:    strings.TrimSpace(cfg.CSSClass),
			}
		}
	}
	return page
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
