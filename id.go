package notes

import (
	"encoding/json"
	"errors"
	"strconv"
)

// ErrZeroID is returned by marshalling or unmarshalling JSON. If one uses NewID passing non-zero values and
// NewStringID passing non-empty strings to construct ID values, this error won't happen.
var ErrZeroID = errors.New("both numeric and string id are zero")

// ID is the opaque identifier the server assigns to notes and action items. The backend we talk to uses integers,
// but nothing in this package relies on that: an ID decodes from either a JSON number or a JSON string and encodes
// back to the same representation. Compare IDs with Equal.
type ID struct {
	num int64
	str string
}

func NewID(value int64) ID {
	return ID{num: value}
}

func NewStringID(value string) ID {
	return ID{str: value}
}

// ParseID builds an ID from its textual form, as typed on a command line or found in a URL path. Decimal strings
// become numeric ids, anything else a string id.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, ErrZeroID
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n == 0 {
			return ID{}, ErrZeroID
		}
		return NewID(n), nil
	}
	return NewStringID(s), nil
}

// IsZero reports whether the id was never set.
func (id ID) IsZero() bool {
	return id.num == 0 && id.str == ""
}

// String returns the path segment form of the id.
func (id ID) String() string {
	if id.str != "" {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// Equal reports whether both ids have the same textual form, so that 7 and "7" name the same entity.
func (id ID) Equal(other ID) bool {
	return id.String() == other.String()
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return nil, ErrZeroID
	}
	if id.str != "" {
		return json.Marshal(id.str)
	}
	return json.Marshal(id.num)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &id.str); err != nil {
			return err
		}
		if len(id.str) == 0 {
			return ErrZeroID
		}
		return nil
	}
	if err := json.Unmarshal(b, &id.num); err != nil {
		return err
	}
	if id.num == 0 {
		return ErrZeroID
	}
	return nil
}
