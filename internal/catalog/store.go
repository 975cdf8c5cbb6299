// Package catalog holds the in-memory software catalog: a tree of
// category -> subcategory -> ordered software records, loaded once from a
// YAML document and persisted back after merges.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Document is the on-disk shape of the catalog.
type Document map[string]map[string][]Record

// Store owns the catalog tree for the lifetime of a session. Only the
// search-and-merge flow mutates it, via Append.
type Store struct {
	categories Document
	collator   *collate.Collator
}

// Load reads, validates, and builds a Store from the catalog document at
// path. Any structural or per-record validation error is fatal: nothing
// else in the tool can function without a well-formed catalog.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	result, err := ValidateDocument(data)
	if err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("catalog %s is invalid:\n%s", path, result.String())
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	s := &Store{
		categories: doc,
		collator:   collate.New(language.English, collate.IgnoreCase),
	}
	if err := s.validateRecords(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return s, nil
}

// New builds a Store from an already-parsed document. Used by tests and by
// callers that assemble catalogs programmatically.
func New(doc Document) (*Store, error) {
	if doc == nil {
		doc = Document{}
	}
	s := &Store{
		categories: doc,
		collator:   collate.New(language.English, collate.IgnoreCase),
	}
	if err := s.validateRecords(); err != nil {
		return nil, err
	}
	return s, nil
}

// validateRecords applies the per-type required-field invariant to every
// record, identifying failures by their category path.
func (s *Store) validateRecords() error {
	for _, cat := range sortedKeys(s.categories) {
		subs := s.categories[cat]
		for _, sub := range sortedKeys(subs) {
			recs := subs[sub]
			seen := make(map[string]bool, len(recs))
			for _, r := range recs {
				if err := r.Validate(); err != nil {
					return fmt.Errorf("%s/%s: %w", cat, sub, err)
				}
				key := strings.ToLower(r.Name)
				if seen[key] {
					return fmt.Errorf("%s/%s: duplicate record %q", cat, sub, r.Name)
				}
				seen[key] = true
			}
		}
	}
	return nil
}

// Categories returns category names in stable sorted order. Menu numbering
// depends on this order being identical on every render.
func (s *Store) Categories() []string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	s.collator.SortStrings(names)
	return names
}

// Subcategories returns the subcategory names of a category in stable
// sorted order, or nil if the category does not exist.
func (s *Store) Subcategories(category string) []string {
	subs, ok := s.categories[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	s.collator.SortStrings(names)
	return names
}

// Records returns the software list for a subcategory in insertion order.
// The returned slice is a copy; the store's list is never aliased out.
func (s *Store) Records(category, subcategory string) []Record {
	subs, ok := s.categories[category]
	if !ok {
		return nil
	}
	recs := subs[subcategory]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Len reports the total number of records in the catalog.
func (s *Store) Len() int {
	n := 0
	for _, subs := range s.categories {
		for _, recs := range subs {
			n += len(recs)
		}
	}
	return n
}

// Append validates rec and adds it to the end of the given subcategory
// list, creating the category and subcategory if needed. A record whose
// name already exists in the target list is rejected.
func (s *Store) Append(category, subcategory string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if category == "" || subcategory == "" {
		return fmt.Errorf("appending %s: category and subcategory are required", rec.Name)
	}

	if s.categories[category] == nil {
		s.categories[category] = map[string][]Record{}
	}
	for _, existing := range s.categories[category][subcategory] {
		if strings.EqualFold(existing.Name, rec.Name) {
			return fmt.Errorf("%s/%s already contains %q", category, subcategory, rec.Name)
		}
	}
	s.categories[category][subcategory] = append(s.categories[category][subcategory], rec)
	return nil
}

// Save writes the catalog document to path atomically: marshal to a temp
// file in the same directory, then rename over the target.
func (s *Store) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp catalog file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing catalog file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalizing catalog write: %w", err)
	}
	return nil
}

// Marshal serializes the catalog. Map keys come out sorted, which keeps
// diffs stable; record order within each list is preserved verbatim.
func (s *Store) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s.categories)
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return data, nil
}

// Find returns the record with the given name within a subcategory,
// matched case-insensitively.
func (s *Store) Find(category, subcategory, name string) (Record, bool) {
	for _, r := range s.Records(category, subcategory) {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Record{}, false
}

// sortedKeys is a convenience for deterministic iteration in callers that
// do not need locale-aware order.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
