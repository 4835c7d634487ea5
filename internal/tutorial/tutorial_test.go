package tutorial

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_IdentityOnly(t *testing.T) {
	a := NewWithID(7, "Go Basics", "Ann", "http://x", mo.None[time.Time]())
	b := NewWithID(7, "Something else", "Bob", "http://y", mo.Some(time.Now()))
	c := NewWithID(8, "Go Basics", "Ann", "http://x", mo.None[time.Time]())

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Key(), b.Key())
}

func TestEqual_UnsetID(t *testing.T) {
	a := New("Go Basics", "Ann", "http://x", mo.None[time.Time]())
	b := New("Go Basics", "Ann", "http://x", mo.None[time.Time]())

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.HasID())
}

func TestEqual_MutationKeepsIdentity(t *testing.T) {
	a := NewWithID(3, "Old", "Ann", "http://x", mo.None[time.Time]())
	b := NewWithID(3, "Old", "Ann", "http://x", mo.None[time.Time]())

	set := map[int64]*Tutorial{a.Key(): a}
	b.Title = "New"

	got, ok := set[b.Key()]
	require.True(t, ok)
	assert.True(t, got.Equal(b))
}

func TestString(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	withDate := NewWithID(1, "Go Basics", "Ann", "http://x", mo.Some(date))
	assert.Equal(t, "Tutorial(id=1, title=Go Basics, author=Ann, url=http://x, publishedDate=2024-01-10)", withDate.String())

	noDate := NewWithID(2, "Go Basics", "Ann", "http://x", mo.None[time.Time]())
	assert.Equal(t, "Tutorial(id=2, title=Go Basics, author=Ann, url=http://x, publishedDate=null)", noDate.String())
}

func TestSetPublishedDate_DropsTimeOfDay(t *testing.T) {
	tut := New("t", "a", "u", mo.None[time.Time]())
	loc := time.FixedZone("UTC+5", 5*60*60)
	tut.SetPublishedDate(time.Date(2024, 1, 10, 23, 30, 0, 0, loc))

	got, ok := tut.PublishedDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got)

	tut.ClearPublishedDate()
	assert.True(t, tut.PublishedDate.IsAbsent())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "plain date", input: "2024-01-10", want: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding whitespace", input: "  2023-12-31 ", want: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "wrong order", input: "10-01-2024", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "impossible day", input: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(mo.None[time.Time]()))
	assert.Equal(t, "2024-01-10", FormatDate(mo.Some(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))))
}
