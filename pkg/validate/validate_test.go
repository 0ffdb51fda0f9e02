package validate

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"short string", "abc", "abc"},
		{"exact length", "12345678901234567890", "12345678901234567890"},
		{"long string", "123456789012345678901", "12345678901234567..."},
		{"number", 42, "42"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shorten(tt.value, 20))
		})
	}
}

func TestStringNotEmpty(t *testing.T) {
	rule := StringNotEmpty("url")

	assert.NoError(t, rule("https://example.com"))

	err := rule("")
	require.Error(t, err)
	assert.Equal(t, "'url': '' can not be empty!", err.Error())

	// absent values are not skipped by this rule
	assert.Error(t, rule(nil))
	assert.Error(t, rule(12))
}

func TestStringLengthMinMax(t *testing.T) {
	rule := StringLengthMinMax("url", 2, 5)

	assert.NoError(t, rule(nil))
	assert.NoError(t, rule("ab"))
	assert.NoError(t, rule("abcde"))

	err := rule("a")
	require.Error(t, err)
	assert.Equal(t, "'url': 'a' must be longer or equal than 2!", err.Error())

	err = rule("abcdef")
	require.Error(t, err)
	assert.Equal(t, "'url': 'abcdef' must be shorter or equal than 5!", err.Error())

	err = rule(3)
	require.Error(t, err)
	assert.Equal(t, "'url': '3' must be string!", err.Error())
}

func TestStringMaxLength(t *testing.T) {
	rule := StringMaxLength("value", 3)
	assert.NoError(t, rule(""))
	assert.NoError(t, rule("abc"))
	assert.Error(t, rule("abcd"))
}

func TestStringMatchRegex(t *testing.T) {
	rule := StringMatchRegex("path", regexp.MustCompile(`\.png$`))
	assert.NoError(t, rule(nil))
	assert.NoError(t, rule("shot.png"))

	err := rule("shot.gif")
	require.Error(t, err)
	assert.Equal(t, `'path': 'shot.gif' not match regex \.png$`, err.Error())
}

func TestNumberMinMax(t *testing.T) {
	rule := NumberMinMax("timeout", 0, 100)

	assert.NoError(t, rule(nil))
	assert.NoError(t, rule(0))
	assert.NoError(t, rule(int64(100)))
	assert.NoError(t, rule(float64(50)))

	err := rule(-1)
	require.Error(t, err)
	assert.Equal(t, "'timeout': '-1' must be greater or equal than 0!", err.Error())

	err = rule(101)
	require.Error(t, err)
	assert.Equal(t, "'timeout': '101' must be less or equal than 100!", err.Error())

	err = rule("50")
	require.Error(t, err)
	assert.Equal(t, "'timeout': '50' must be number!", err.Error())

	assert.Error(t, rule(1.5))
}

func TestEnum(t *testing.T) {
	rule := Enum("waitUntil", []string{"load", "domcontentloaded"})

	assert.NoError(t, rule(nil))
	assert.NoError(t, rule("load"))

	err := rule("idle")
	require.Error(t, err)
	assert.Equal(t, `'waitUntil': 'idle' must be one of ["load","domcontentloaded"]!`, err.Error())
}

func TestAll(t *testing.T) {
	assert.NoError(t, All())
	assert.NoError(t, All(nil, nil))

	first := errors.New("first")
	second := errors.New("second")
	assert.Same(t, first, All(nil, first, second))
}

func TestErrorTruncatesValue(t *testing.T) {
	rule := StringLengthMinMax("note", 0, 5)
	err := rule("a very long note that goes on")
	require.Error(t, err)
	assert.Equal(t, "'note': 'a very long note ...' must be shorter or equal than 5!", err.Error())

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "note", verr.Field)
}

func TestErrorDefaultField(t *testing.T) {
	err := StringNotEmpty("")("")
	assert.Equal(t, "'Value': '' can not be empty!", err.Error())
}
