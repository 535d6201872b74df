package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new record identifier as a hyphenless UUIDv4 string.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StringList stores a []string column as a JSON array.
// Raw JSON at the DB boundary avoids ORM array-type portability issues
// between postgres (jsonb) and sqlite (text).
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode StringList: %w", err)
	}
	*l = out
	return nil
}

// Contains reports whether key is present in the list.
func (l StringList) Contains(key string) bool {
	for _, k := range l {
		if k == key {
			return true
		}
	}
	return false
}
