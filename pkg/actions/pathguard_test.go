package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathGuard(t *testing.T) {
	guard, err := NewPathGuard([]string{"shots/**.png", "*.png"}, []string{"shots/private/**"})
	require.NoError(t, err)
	rule := guard.Rule("path")

	tests := []struct {
		path    string
		wantErr string
	}{
		{"home.png", ""},
		{"shots/home.png", ""},
		{"shots/a/b/home.png", ""},
		{"./shots/home.png", ""},
		{"shots/private/secret.png", "'path': 'shots/private/sec...' is denied by pattern 'shots/private/**'!"},
		{"home.jpg", "'path': 'home.jpg' does not match any allowed pattern!"},
		{"other/home.png", "'path': 'other/home.png' does not match any allowed pattern!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := rule(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPathGuardDenyOnly(t *testing.T) {
	guard, err := NewPathGuard(nil, []string{"/etc/**"})
	require.NoError(t, err)

	assert.NoError(t, guard.Rule("path")("anything/at/all.png"))
	assert.Error(t, guard.Rule("path")("/etc/passwd"))
}

func TestNilPathGuardAcceptsAll(t *testing.T) {
	var guard *PathGuard
	assert.NoError(t, guard.Rule("path")("/etc/passwd"))
}

func TestNewPathGuardInvalidPattern(t *testing.T) {
	_, err := NewPathGuard([]string{"[abc"}, nil)
	assert.ErrorContains(t, err, "invalid allowed pattern '[abc'")

	_, err = NewPathGuard(nil, []string{"docs/[abc"})
	assert.ErrorContains(t, err, "invalid denied pattern 'docs/[abc'")
}

func TestCaptureScreenUsesGuard(t *testing.T) {
	guard, err := NewPathGuard(nil, []string{"**.exe"})
	require.NoError(t, err)
	f := NewFormatter(NewRegistry(WithPathGuard(guard)))

	_, err = f.FormatAction("capture_screen <<evil.exe>>")
	assert.EqualError(t, err, "action 'capture_screen' meta invalid - 'path': 'evil.exe' is denied by pattern '**.exe'!")

	_, err = f.FormatAction("capture_screen <<fine.png>>")
	assert.NoError(t, err)
}
