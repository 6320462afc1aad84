// Package catalog provides the data types for books, users and view history.
package catalog

import (
	"slices"
	"strings"
	"time"
)

// CreatedDateLayout is the layout used when stamping Book.CreatedDate.
// Lexicographic order of values in this layout equals chronological order.
const CreatedDateLayout = "2006-01-02T15:04:05"

// Book represents a catalog entry keyed by ISBN.
type Book struct {
	ISBN        string   `json:"isbn" validate:"required,max=32"`
	Title       string   `json:"title" validate:"max=512"`
	Author      string   `json:"author" validate:"max=256"`
	Year        int      `json:"year" validate:"gte=0"`
	Publisher   string   `json:"publisher"`
	Genre       string   `json:"genre"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	CreatedDate string   `json:"createdDate"`
}

// HasTag reports whether the book carries tag.
func (b *Book) HasTag(tag string) bool {
	return slices.Contains(b.Tags, strings.TrimSpace(tag))
}

// AddTag adds tag unless it is blank or already present.
func (b *Book) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(b.Tags, tag) {
		return false
	}
	b.Tags = append(b.Tags, tag)
	return true
}

// RemoveTag removes tag and reports whether it was present.
func (b *Book) RemoveTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	idx := slices.Index(b.Tags, tag)
	if idx < 0 {
		return false
	}
	b.Tags = slices.Delete(b.Tags, idx, idx+1)
	return true
}

// SetTags replaces the tag set. Blank and repeated tags are dropped.
func (b *Book) SetTags(tags []string) {
	b.Tags = nil
	for _, tag := range tags {
		b.AddTag(tag)
	}
}

// TagSet returns the tags as a set.
func (b *Book) TagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(b.Tags))
	for _, tag := range b.Tags {
		set[tag] = struct{}{}
	}
	return set
}

// StampCreated sets CreatedDate to now when it is empty.
func (b *Book) StampCreated(now time.Time) {
	if b.CreatedDate == "" {
		b.CreatedDate = now.Format(CreatedDateLayout)
	}
}

// User is a registered account.
type User struct {
	Username     string `json:"username" validate:"required,max=64"`
	PasswordHash string `json:"-"`
}

// History is the ordered list of books a user has viewed, oldest first.
// Each ISBN appears at most once, at the position of its first view.
type History struct {
	Username string
	ISBNs    []string
}

// Add appends isbn unless it is already present.
func (h *History) Add(isbn string) bool {
	if isbn == "" || slices.Contains(h.ISBNs, isbn) {
		return false
	}
	h.ISBNs = append(h.ISBNs, isbn)
	return true
}

// Remove drops every occurrence of isbn and reports whether any was found.
func (h *History) Remove(isbn string) bool {
	before := len(h.ISBNs)
	h.ISBNs = slices.DeleteFunc(h.ISBNs, func(s string) bool { return s == isbn })
	return len(h.ISBNs) != before
}

// Clear empties the history.
func (h *History) Clear() {
	h.ISBNs = nil
}

// Contains reports whether isbn has been viewed.
func (h History) Contains(isbn string) bool {
	return slices.Contains(h.ISBNs, isbn)
}

// Len returns the number of entries.
func (h History) Len() int {
	return len(h.ISBNs)
}

// Recent returns up to n of the latest entries, newest first.
func (h History) Recent(n int) []string {
	if n <= 0 || len(h.ISBNs) == 0 {
		return nil
	}
	start := max(len(h.ISBNs)-n, 0)
	tail := slices.Clone(h.ISBNs[start:])
	slices.Reverse(tail)
	return tail
}
