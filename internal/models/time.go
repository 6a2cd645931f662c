package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// flexTimeFormats are the accepted input layouts for date fields, tried in
// order. Clients commonly send bare dates for experience/education ranges.
var flexTimeFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// FlexTime is a timestamp that unmarshals from either an RFC 3339 string or
// a bare YYYY-MM-DD date. It marshals as RFC 3339.
type FlexTime time.Time

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*t = FlexTime(time.Time{})
		return nil
	}
	for _, layout := range flexTimeFormats {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = FlexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

// MarshalJSON implements json.Marshaler.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

// Time returns the underlying time.Time value.
func (t FlexTime) Time() time.Time {
	return time.Time(t)
}

// IsZero reports whether the value is unset.
func (t FlexTime) IsZero() bool {
	return time.Time(t).IsZero()
}

// TimePtr converts an optional FlexTime to an optional time.Time. A nil or
// zero value yields nil.
func (t *FlexTime) TimePtr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := time.Time(*t)
	return &v
}
