package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringSet is a set of strings persisted as a JSON array.
// The encoded form is canonical: values are trimmed, de-duplicated and sorted,
// so two equal sets always serialize to the same text.
type StringSet []string

// CanonicalValue is the form a member takes inside a StringSet. Values
// compared against a set must go through it first.
func CanonicalValue(v string) string { return strings.TrimSpace(v) }

// NewStringSet builds a canonical set from values. Blank values are dropped.
func NewStringSet(values ...string) StringSet {
	seen := make(map[string]struct{}, len(values))
	out := make(StringSet, 0, len(values))
	for _, v := range values {
		v = CanonicalValue(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ParseStringSet decodes the JSON array form. Anything other than an array of
// strings is rejected.
func ParseStringSet(raw string) (StringSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StringSet{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("invalid string set %q: %w", raw, err)
	}
	return NewStringSet(values...), nil
}

// Contains reports whether v is a member of the set.
func (s StringSet) Contains(v string) bool {
	v = CanonicalValue(v)
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one member.
func (s StringSet) Intersects(other StringSet) bool {
	for _, e := range s {
		if other.Contains(e) {
			return true
		}
	}
	return false
}

// Encode returns the canonical JSON array text.
func (s StringSet) Encode() string {
	b, _ := json.Marshal([]string(NewStringSet(s...)))
	return string(b)
}

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	return s.Encode(), nil
}

// Scan implements sql.Scanner. Stored text that does not decode is an error,
// it is never silently treated as an empty set.
func (s *StringSet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported string set source %T", src)
	}
	parsed, err := ParseStringSet(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
