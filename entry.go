package sitesearch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Entry is one document of the site search index. Entries are loaded once and never mutated.
type Entry struct {
	Permalink string   `json:"permalink"`         // Permalink is the stable URL of the page and the dedup key
	Title     string   `json:"title"`             // Title is the page title
	Summary   string   `json:"summary,omitempty"` // Summary is a short description of the page
	Content   string   `json:"content,omitempty"` // Content is the plain text body of the page
	Tags      []string `json:"tags,omitempty"`    // Tags are the page tags
	Date      string   `json:"date,omitempty"`    // Date is the publish date as written by the site generator
}

// HasSummary returns true if the entry has a summary
func (e *Entry) HasSummary() bool {
	return e.Summary != ""
}

// HasDate returns true if the entry has a date
func (e *Entry) HasDate() bool {
	return e.Date != ""
}

// HasTag returns true if the entry carries the exact tag
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// matches reports whether any searchable field contains the lowercased query.
func (e *Entry) matches(queryLower string) bool {
	if strings.Contains(strings.ToLower(e.Title), queryLower) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Summary), queryLower) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Content), queryLower) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), queryLower) {
			return true
		}
	}
	return false
}

// DecodeEntries reads a JSON array of entries.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexDecode, err)
	}
	return entries, nil
}
