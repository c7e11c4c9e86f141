package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `[
	{"chapter_number":1,"title":"The Way","original_text":"道可道","modern_translation":"The way that can be told is not the eternal way.","modern_interpretation":"Words point beyond themselves.","keywords":["way","naming"]},
	{"chapter_number":2,"title":"Opposites","original_text":"天下皆知","modern_translation":"When all know beauty as beauty, ugliness arises.","modern_interpretation":"Qualities define each other.","keywords":["balance","beauty"]},
	{"chapter_number":8,"title":"Water","original_text":"上善若水","modern_translation":"The highest good is like water.","modern_interpretation":"Yield and endure.","keywords":["water","humility"]}
]`

type fixture struct {
	config string
	prefs  string
	store  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	contentPath := filepath.Join(dir, "chapters.json")
	require.NoError(t, os.WriteFile(contentPath, []byte(doc), 0o644))

	f := fixture{
		config: filepath.Join(dir, "config.toml"),
		prefs:  filepath.Join(dir, "prefs.toml"),
		store:  filepath.Join(dir, "state", "store.json"),
	}
	cfg := `content = "` + contentPath + `"
store = "file"
store_path = "` + f.store + `"
log_file = "` + filepath.Join(dir, "tao.log") + `"
`
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0o644))
	return f
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", f.config, "--prefs", f.prefs}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tao", cmd.Use)
	assert.Contains(t, cmd.Long, "81 chapters")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{{"read"}, {"search"}, {"show"}, {"random"}, {"fav"}, {"fav", "list"}, {"fav", "toggle"}, {"logs"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v should exist", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("prefs"))
}

func TestInvalidFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "--format", "yaml", "show", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUsageErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
	}{
		{"show without ordinal", []string{"show"}},
		{"show with two ordinals", []string{"show", "1", "2"}},
		{"toggle without ordinal", []string{"fav", "toggle"}},
		{"random with argument", []string{"random", "3"}},
		{"unknown command", []string{"bogus"}},
		{"unknown flag", []string{"search", "--bogus"}},
		{"unknown shorthand", []string{"show", "-z", "1"}},
		{"bad flag value", []string{"logs", "-n", "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err), "error: %v", err)
		})
	}

	_, statErr := os.Stat(f.store)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "usage errors must not touch the store")
}

func TestShow(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "show", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapter 8: Water")
	assert.Contains(t, out, "The highest good is like water.")
	assert.Contains(t, out, "Keywords: water, humility")
	assert.NotContains(t, out, "上善若水")

	out, err = f.run(t, "show", "--original", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "上善若水")
}

func TestShow_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		arg  string
		code int
	}{
		{"not a number", "eight", ExitCommandError},
		{"below range", "0", ExitCommandError},
		{"above range", "82", ExitCommandError},
		{"not in collection", "5", ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.run(t, "show", tt.arg)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
		})
	}
}

func TestShow_JSON(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "--format", "json", "show", "2")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ChapterView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Chapter)
	assert.Equal(t, []string{"balance", "beauty"}, resp.Data.Keywords)
	assert.Empty(t, resp.Data.OriginalText)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "search", "BEAUTY")
	require.NoError(t, err)
	assert.Contains(t, out, " 2  Opposites")
	assert.NotContains(t, out, "Water")

	out, err = f.run(t, "search", "no", "such", "thing")
	require.NoError(t, err)
	assert.Contains(t, out, "No chapters match.")

	// Blank query lists everything in order.
	out, err = f.run(t, "--format", "json", "search")
	require.NoError(t, err)
	var resp struct {
		Data struct {
			Results []SummaryView `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	got := make([]int, 0, len(resp.Data.Results))
	for _, r := range resp.Data.Results {
		got = append(got, r.Chapter)
	}
	assert.Equal(t, []int{1, 2, 8}, got)
}

func TestRandom(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "--format", "json", "random")
	require.NoError(t, err)

	var resp struct {
		Data ChapterView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Contains(t, []int{1, 2, 8}, resp.Data.Chapter)
}

func TestFavToggleAndList(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "fav", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet.")

	out, err = f.run(t, "fav", "toggle", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapter 8 added to favorites")

	_, err = f.run(t, "fav", "toggle", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(f.store)
	require.NoError(t, err)
	assert.Contains(t, string(data), `[8,1]`)

	out, err = f.run(t, "fav", "list")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)★  1  The Way.*★  8  Water`, out)

	out, err = f.run(t, "fav", "toggle", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapter 8 removed from favorites")

	out, err = f.run(t, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapter 1 ★: The Way")
}

func TestFavToggle_OutOfRange(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "fav", "toggle", "99")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, statErr := os.Stat(f.store)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "rejected toggle must not write the store")
}

func TestMissingContent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(f.config), "chapters.json")))

	_, err := f.run(t, "show", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestLogs(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "logs")
	require.NoError(t, err)
	assert.Empty(t, out, "no log file yet")

	_, err = f.run(t, "show", "1")
	require.NoError(t, err)

	out, err = f.run(t, "logs", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "session opened")
	assert.Contains(t, out, "chapters loaded")
}
