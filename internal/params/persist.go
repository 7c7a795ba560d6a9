package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
)

// PersistenceError describes a failed save or load. It matches
// ErrPersistence as well as the underlying cause with errors.Is.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{kerrors.ErrPersistence, e.Err}
}

// Save writes every parameter to the parameter file as a JSON object with
// four space indentation, in insertion order. The file is overwritten in
// place.
func (s *Store) Save() error {
	path := s.File()

	data, err := s.MarshalJSON()
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "    "); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	out.WriteByte('\n')

	if err := os.WriteFile(path, out.Bytes(), 0600); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	s.log.Debugf("Saved %d parameters to %s", len(s.names), path)
	return nil
}

// Load reads the parameter file and merges it into the store: names in the
// file overwrite stored values, other stored parameters are kept. If the
// file is missing or malformed the store is left unchanged.
func (s *Store) Load() error {
	path := s.File()

	data, err := os.ReadFile(path)
	if err != nil {
		return &PersistenceError{Op: "load", Path: path, Err: err}
	}

	names, values, err := decodeObject(data)
	if err != nil {
		return &PersistenceError{Op: "load", Path: path, Err: err}
	}

	for _, name := range names {
		s.set(name, values[name])
	}

	s.log.Debugf("Loaded %d parameters from %s", len(names), path)
	return nil
}

// Check reports whether the parameter file exists and holds a JSON object.
func (s *Store) Check() bool {
	data, err := os.ReadFile(s.File())
	if err != nil {
		return false
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(data, &obj) == nil && obj != nil
}

// MarshalJSON encodes the parameters as a JSON object in insertion order.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := s.values[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errNotObject = errors.New("top level value is not a JSON object")

// decodeObject parses a JSON object of parameters, keeping the order the
// names appear in. A repeated name keeps its first position and its last
// value.
func decodeObject(data []byte) ([]string, map[string]Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errNotObject
	}

	var names []string
	values := make(map[string]Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var v Value
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = v
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("unexpected data after the top level object")
	}

	return names, values, nil
}
