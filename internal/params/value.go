package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Value is a parameter value: either a single string or an ordered list of
// strings. The kind is fixed when the value is built.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar returns a single-string value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List returns a list value. The items are copied.
func List(items ...string) Value {
	return Value{list: slices.Clone(items), isList: true}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool {
	return v.isList
}

// String returns the scalar value. It is empty for lists.
func (v Value) String() string {
	return v.scalar
}

// Items returns a copy of the list items, or nil for scalars.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	return slices.Clone(v.list)
}

// Len returns the number of list items, or 1 for a scalar.
func (v Value) Len() int {
	if v.isList {
		return len(v.list)
	}
	return 1
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.isList != o.isList {
		return false
	}
	if v.isList {
		return slices.Equal(v.list, o.list)
	}
	return v.scalar == o.scalar
}

// Interface returns the value as a string or []string, the shapes found in
// the parameter file.
func (v Value) Interface() any {
	if v.isList {
		return v.Items()
	}
	return v.scalar
}

// MarshalJSON encodes scalars as JSON strings and lists as arrays of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	var err error
	if v.isList {
		items := v.list
		if items == nil {
			items = []string{}
		}
		err = enc.Encode(items)
	} else {
		err = enc.Encode(v.scalar)
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty parameter value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Scalar(s)
		return nil
	case '[':
		var raw []*string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("list values must be strings: %w", err)
		}
		items := make([]string, len(raw))
		for i, item := range raw {
			if item == nil {
				return fmt.Errorf("list values must be strings: element %d is null", i)
			}
			items[i] = *item
		}
		*v = List(items...)
		return nil
	default:
		return fmt.Errorf("parameter values must be a string or an array of strings, got %s", truncate(data, 32))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
