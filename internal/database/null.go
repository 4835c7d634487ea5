package database

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/saltyorg/tutorials/internal/tutorial"
)

// nullDate scans a nullable DATE column. The driver may hand back a parsed
// time.Time or the raw YYYY-MM-DD text depending on the column declaration.
type nullDate struct {
	Time  time.Time
	Valid bool
}

func (d *nullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = tutorial.DateOnly(v), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported date value of type %T", src)
	}
}

func (d *nullDate) parse(s string) error {
	for _, layout := range []string{tutorial.DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = tutorial.DateOnly(ts), true
			return nil
		}
	}
	return fmt.Errorf("invalid date value %q", s)
}

// option converts the scanned value into the model's optional date
func (d nullDate) option() mo.Option[time.Time] {
	if d.Valid {
		return mo.Some(d.Time)
	}
	return mo.None[time.Time]()
}

// dateValue converts an optional date into a bind parameter (nil if absent)
func dateValue(date mo.Option[time.Time]) any {
	if v, ok := date.Get(); ok {
		return v.Format(tutorial.DateLayout)
	}
	return nil
}
