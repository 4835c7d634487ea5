package tutorial

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
)

// DateLayout is the calendar date format used for published dates.
const DateLayout = "2006-01-02"

// Tutorial represents a single tutorial record.
//
// Identity is the ID alone: changing Title, Author, URL or PublishedDate never
// changes which record a value refers to. Maps keyed by Key() must not have
// their entries mutated through aliases held outside the map.
type Tutorial struct {
	ID            int64
	Title         string
	Author        string
	URL           string
	PublishedDate mo.Option[time.Time]
}

// New creates a tutorial that has not been stored yet.
func New(title, author, url string, published mo.Option[time.Time]) *Tutorial {
	return NewWithID(0, title, author, url, published)
}

// NewWithID creates a tutorial with a known store-assigned ID.
func NewWithID(id int64, title, author, url string, published mo.Option[time.Time]) *Tutorial {
	t := &Tutorial{
		ID:     id,
		Title:  title,
		Author: author,
		URL:    url,
	}
	if date, ok := published.Get(); ok {
		t.SetPublishedDate(date)
	}
	return t
}

// HasID reports whether the tutorial has been assigned an ID by the store.
func (t *Tutorial) HasID() bool {
	return t != nil && t.ID > 0
}

// Key returns the identity of the tutorial, suitable as a map key.
func (t *Tutorial) Key() int64 {
	return t.ID
}

// Equal reports whether t and other are the same entity.
// A tutorial without an ID is only equal to itself.
func (t *Tutorial) Equal(other *Tutorial) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t == other {
		return true
	}
	if !t.HasID() || !other.HasID() {
		return false
	}
	return t.ID == other.ID
}

// SetPublishedDate sets the published date, dropping any time of day.
func (t *Tutorial) SetPublishedDate(date time.Time) {
	t.PublishedDate = mo.Some(DateOnly(date))
}

// ClearPublishedDate marks the published date as unknown.
func (t *Tutorial) ClearPublishedDate() {
	t.PublishedDate = mo.None[time.Time]()
}

func (t *Tutorial) String() string {
	published := FormatDate(t.PublishedDate)
	if published == "" {
		published = "null"
	}
	return fmt.Sprintf("Tutorial(id=%d, title=%s, author=%s, url=%s, publishedDate=%s)",
		t.ID, t.Title, t.Author, t.URL, published)
}

// DateOnly truncates a time to midnight UTC of its calendar day.
func DateOnly(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return date, nil
}

// FormatDate renders an optional date as YYYY-MM-DD, or "" when absent.
func FormatDate(date mo.Option[time.Time]) string {
	if v, ok := date.Get(); ok {
		return v.Format(DateLayout)
	}
	return ""
}
