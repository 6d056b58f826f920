package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

const (
	dirName  = ".shellman"
	fileName = "config.json"
)

// ErrMalformed is returned by Load when the file exists but is not a valid
// configuration document.
var ErrMalformed = errors.New("malformed config file")

// Store reads and writes the single config file under a root directory.
//
// Layout:
//
//	<root>/config.json
type Store struct {
	root string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// DefaultRoot returns ~/.shellman.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Dir returns the configuration directory.
func (s *Store) Dir() string {
	return s.root
}

// Path returns the full path of the config file.
func (s *Store) Path() string {
	return filepath.Join(s.root, fileName)
}

// EnsureDir creates the configuration directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.root, err)
	}
	return nil
}

// Exists reports whether the config file is present.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.Path())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", s.Path(), err)
}

// Document is the parsed config file: the config fields plus every other
// top-level key, which Save writes back unchanged.
type Document struct {
	Config Config

	// Extra holds top-level keys that are not config fields. Key matching
	// is exact, so "api_key" lands here rather than in Config.APIKey.
	Extra map[string]json.RawMessage

	// Invalid names the config keys whose value had the wrong JSON type.
	// Those fields are left unset in Config.
	Invalid []string
}

// Load reads the config file and returns its fields. See LoadDocument.
func (s *Store) Load() (Config, error) {
	d, err := s.LoadDocument()
	return d.Config, err
}

// LoadDocument reads and strictly parses the config file. A missing file
// yields an error matching fs.ErrNotExist. Anything that is not a single
// JSON object yields an error matching ErrMalformed. A well-formed object
// never fails: fields of the wrong type are reported in Invalid and left
// unset.
func (s *Store) LoadDocument() (Document, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", s.Path(), err)
	}

	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformed, s.Path(), err)
	}
	if raw == nil {
		return Document{}, fmt.Errorf("%w: %s: not an object", ErrMalformed, s.Path())
	}
	// A second document or stray tokens after the object is not valid JSON.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("%w: %s: trailing data", ErrMalformed, s.Path())
	}
	return decodeDocument(raw), nil
}

func decodeDocument(raw map[string]json.RawMessage) Document {
	var d Document
	for key, val := range raw {
		var err error
		switch key {
		case "API_KEY":
			err = decodeValue(val, &d.Config.APIKey)
		case "API_PROVIDER":
			err = decodeValue(val, &d.Config.APIProvider)
		case "API_MODEL":
			err = decodeValue(val, &d.Config.APIModel)
		case "API_CUSTOM_ENDPOINT":
			err = decodeValue(val, &d.Config.APICustomEndpoint)
		case "HISTORY_ENABLE":
			err = decodeValue(val, &d.Config.HistoryEnable)
		case "source":
			err = decodeValue(val, &d.Config.Source)
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]json.RawMessage)
			}
			d.Extra[key] = val
		}
		if err != nil {
			d.Invalid = append(d.Invalid, key)
		}
	}
	slices.Sort(d.Invalid)
	return d
}

// decodeValue sets *dst only when val decodes cleanly into its type.
func decodeValue[T any](val json.RawMessage, dst *T) error {
	var v T
	if err := json.Unmarshal(val, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

// isConfigKey reports whether key is one of the JSON keys of Config.
func isConfigKey(key string) bool {
	switch key {
	case "API_KEY", "API_PROVIDER", "API_MODEL", "API_CUSTOM_ENDPOINT", "HISTORY_ENABLE", "source":
		return true
	}
	return false
}

// Save writes c as the whole file. See SaveDocument.
func (s *Store) Save(c Config) error {
	return s.SaveDocument(Document{Config: c})
}

// SaveDocument writes d as 2-space indented JSON: the config fields first,
// then the extra keys in sorted order. The file is replaced atomically and
// readable only by the owner since it carries the API key.
func (s *Store) SaveDocument(d Document) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}

	data, err := encodeDocument(d)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", s.root, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("write %s: %w", s.Path(), err)
	}
	return nil
}

func encodeDocument(d Document) ([]byte, error) {
	data, err := json.Marshal(d.Config)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		if !isConfigKey(k) {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		slices.Sort(keys)
		// Config always marshals at least API_KEY, so the object is non-empty.
		buf := bytes.NewBuffer(data[:len(data)-1:len(data)-1])
		for _, k := range keys {
			name, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(',')
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(d.Extra[k])
		}
		buf.WriteByte('}')
		data = buf.Bytes()
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
