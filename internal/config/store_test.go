package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), ".shellman"))
	want := Config{
		APIKey:            "sk-test-1234",
		APIProvider:       "ollama",
		APIModel:          "qwen2.5-coder",
		APICustomEndpoint: "http://localhost:11434/v1",
		HistoryEnable:     Bool(false),
		Source:            SourceUserInput,
	}

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSaveFormat(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	require.NoError(t, s.Save(Defaults()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, `{
  "API_KEY": "",
  "API_PROVIDER": "openai",
  "API_MODEL": "gpt-4o",
  "HISTORY_ENABLE": true,
  "source": "defaults"
}
`, string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.Path())
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
}

func TestStoreLoadMissing(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	ok, err := s.Exists()
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Load()
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStoreLoadMalformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{"truncated", `{"API_KEY": "k"`},
		{"not json", `API_KEY=k`},
		{"trailing data", `{"API_KEY": "k"} {}`},
		{"array", `[{"API_KEY": "k"}]`},
		{"null", `null`},
		{"empty", ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(t.TempDir())
			require.NoError(t, os.WriteFile(s.Path(), []byte(tc.content), 0o600))

			_, err := s.Load()
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestStoreEnsureDirCreatesNested(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "a", "b", ".shellman")
	s := NewStore(root)
	require.NoError(t, s.EnsureDir())

	info, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, filepath.Join(root, "config.json"), s.Path())
}

func TestStoreLoadWrongTypeKeepsOtherFields(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte(
		`{"API_KEY": "sk-user", "API_PROVIDER": 7, "API_MODEL": "gpt-4o", "HISTORY_ENABLE": "true"}`), 0o600))

	d, err := s.LoadDocument()
	require.NoError(t, err)
	require.Equal(t, Config{APIKey: "sk-user", APIModel: "gpt-4o"}, d.Config)
	require.Equal(t, []string{"API_PROVIDER", "HISTORY_ENABLE"}, d.Invalid)
	require.Empty(t, d.Extra)
}

func TestStoreLoadKeysAreCaseSensitive(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte(
		`{"api_key": "k", "Api_Provider": "openai", "API_MODEL": "gpt-4o"}`), 0o600))

	d, err := s.LoadDocument()
	require.NoError(t, err)
	require.Equal(t, Config{APIModel: "gpt-4o"}, d.Config)
	require.Equal(t, []Field{FieldAPIKey, FieldProvider, FieldHistory}, MissingFields(d.Config))
	require.Len(t, d.Extra, 2)
	require.JSONEq(t, `"k"`, string(d.Extra["api_key"]))
}

func TestStoreSaveDocumentKeepsExtraKeys(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	d := Document{
		Config: Defaults(),
		Extra: map[string]json.RawMessage{
			"ZETA":    json.RawMessage(`{"nested":[1,2]}`),
			"EXTRA":   json.RawMessage(`"keep-me"`),
			"API_KEY": json.RawMessage(`"must-not-override"`),
		},
	}
	require.NoError(t, s.SaveDocument(d))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, `{
  "API_KEY": "",
  "API_PROVIDER": "openai",
  "API_MODEL": "gpt-4o",
  "HISTORY_ENABLE": true,
  "source": "defaults",
  "EXTRA": "keep-me",
  "ZETA": {
    "nested": [
      1,
      2
    ]
  }
}
`, string(data))

	got, err := s.LoadDocument()
	require.NoError(t, err)
	require.Equal(t, Defaults(), got.Config)
	require.Equal(t, []string{"EXTRA", "ZETA"}, sortedKeys(got.Extra))
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
