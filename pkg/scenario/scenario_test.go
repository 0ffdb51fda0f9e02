package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
name: login
description: sign in
actions:
  - go_to <<https://example.com/login>>
  - name: click_on
    meta:
      selector: "#login"
  - name: group
    meta:
      groupName: wait a bit
      actions:
        - wait <<5>>
`))
	require.NoError(t, err)

	assert.Equal(t, "login", s.Name)
	assert.Equal(t, "sign in", s.Description)
	require.Len(t, s.Actions, 3)
	assert.Equal(t, "go_to <<https://example.com/login>>", s.Actions[0])

	click, ok := s.Actions[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "click_on", click["name"])
	assert.Equal(t, map[string]any{"selector": "#login"}, click["meta"])

	group := s.Actions[2].(map[string]any)
	nested := group["meta"].(map[string]any)["actions"]
	assert.Equal(t, []any{"wait <<5>>"}, nested)
}

func TestParseBareList(t *testing.T) {
	s, err := Parse([]byte(`["wait <<1>>", "click_on <<#a>>"]`))
	require.NoError(t, err)
	assert.Equal(t, []any{"wait <<1>>", "click_on <<#a>>"}, s.Actions)
	assert.Empty(t, s.Name)
}

func TestParseJSON(t *testing.T) {
	s, err := Parse([]byte(`{"name": "json", "actions": [{"name": "wait", "meta": {"milliseconds": 10}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "json", s.Name)

	meta := s.Actions[0].(map[string]any)["meta"].(map[string]any)
	assert.Equal(t, 10, meta["milliseconds"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "  \n", "scenario is empty"},
		{"only comments", "# nothing here\n", "scenario is empty"},
		{"malformed", "actions: [", "failed to parse scenario"},
		{"scalar", "just text", "scenario must be a mapping or a list of actions"},
		{"no actions", "name: nothing", "scenario has no actions"},
		{"actions not a list", "actions: wait <<1>>", "failed to parse scenario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions:\n  - wait <<1>>\n"), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "checkout", s.Name)
	assert.Equal(t, path, s.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario")
}
