package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StringList stores an ordered list of strings as a jsonb column.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	if len(b) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(b, (*[]string)(s))
}

// GormDataType tells GORM which column type to migrate to.
func (StringList) GormDataType() string { return "jsonb" }

// NormalizeTags trims, lower-cases and drops empty entries, preserving order.
func NormalizeTags(tags []string) (StringList, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make(StringList, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return nil, errors.New("tags must not contain empty entries")
		}
		out = append(out, t)
	}
	return out, nil
}
