package types

import (
	"encoding/json"
	"strings"
	"time"

	"shareit/src/config"
)

// LocalDateTime travels as "2006-01-02T15:04:05" in local time.
type LocalDateTime struct {
	time.Time
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

func ParseLocalDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, s, time.Local)
	if err == nil {
		return t, nil
	}
	if t, rerr := time.Parse(time.RFC3339Nano, s); rerr == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, err
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(time.Local).Format(config.TIME_PARSE_FORMAT))
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
