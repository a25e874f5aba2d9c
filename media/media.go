// Package media loads paged documents and exposes their page counts to the
// page menu.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/phanxgames/folio/menu"
)

var (
	// ErrNotFound is returned when a document file does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrNoPages is returned for documents that report zero pages.
	ErrNoPages = errors.New("document has no pages")
)

// Document describes a loaded paged document.
type Document struct {
	Path     string
	Name     string
	NumPages int
}

// CountPages opens the PDF at path and returns its page count.
func CountPages(path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("count pages %s: %w", path, ErrNotFound)
		}
		return 0, fmt.Errorf("count pages %s: %w", path, err)
	}
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("count pages %s: %w", path, err)
	}
	defer f.Close()

	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("count pages %s: %w", path, ErrNoPages)
	}
	return n, nil
}

// Load reads the document at path.
func Load(path string) (Document, error) {
	n, err := CountPages(path)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: path, Name: nameOf(path), NumPages: n}, nil
}

// LoadDirectory loads every PDF directly inside dir, sorted by file name.
// Files that fail to load are skipped and reported in the joined error;
// the documents that loaded are still returned.
func LoadDirectory(ctx context.Context, dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var (
		docs []Document
		errs []error
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, err := Load(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, errors.Join(errs...)
}

func nameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResourceMap maps document entities to their resource entries. It
// implements menu.Resources. Not safe for concurrent use.
type ResourceMap struct {
	docs map[menu.EntityID]Document
}

// NewResourceMap returns an empty map.
func NewResourceMap() *ResourceMap {
	return &ResourceMap{docs: make(map[menu.EntityID]Document)}
}

// Set binds doc to the entity id, replacing any previous entry.
func (m *ResourceMap) Set(id menu.EntityID, doc Document) {
	m.docs[id] = doc
}

// Delete removes the entry of id.
func (m *ResourceMap) Delete(id menu.EntityID) {
	delete(m.docs, id)
}

// Document returns the document bound to id.
func (m *ResourceMap) Document(id menu.EntityID) (Document, bool) {
	doc, ok := m.docs[id]
	return doc, ok
}

// Resource returns the page count of the document bound to id.
func (m *ResourceMap) Resource(id menu.EntityID) (menu.Resource, bool) {
	doc, ok := m.docs[id]
	if !ok {
		return menu.Resource{}, false
	}
	return menu.Resource{NumPages: doc.NumPages}, true
}

// Len returns the number of entries.
func (m *ResourceMap) Len() int {
	return len(m.docs)
}

// Prune drops entries for which exists reports false and returns how many
// were removed.
func (m *ResourceMap) Prune(exists func(menu.EntityID) bool) int {
	removed := 0
	for id := range m.docs {
		if !exists(id) {
			delete(m.docs, id)
			removed++
		}
	}
	return removed
}
