package actions

import (
	"fmt"
	"regexp"
	"strings"
)

// Grammar describes the template form of a command:
//
//	<command> <<required[0]>> required[1] <<...>> ... [optional <<...>>]...
//
// The first required key is positional; every other key is introduced by
// its own name. Required keys must appear in order. Optional fragments are
// matched independently anywhere in the text after the required part, so
// they can be given in any order or left out.
type Grammar struct {
	Command  string
	Required []string
	Optional []string

	main     *regexp.Regexp
	optional map[string]*regexp.Regexp
}

// NewGrammar builds the matchers for a command. It panics if required is
// empty.
func NewGrammar(command string, required []string, optional ...string) *Grammar {
	if len(required) == 0 {
		panic(fmt.Sprintf("actions: grammar for %q needs a required key", command))
	}

	var b strings.Builder
	b.WriteString(`^\s*`)
	b.WriteString(regexp.QuoteMeta(command))
	b.WriteString(`\s+<<(.*?)>>`)
	for _, key := range required[1:] {
		b.WriteString(`\s+`)
		b.WriteString(regexp.QuoteMeta(key))
		b.WriteString(`\s+<<(.*?)>>`)
	}
	b.WriteString(`(.*)$`)

	g := &Grammar{
		Command:  command,
		Required: required,
		Optional: optional,
		main:     regexp.MustCompile(b.String()),
		optional: make(map[string]*regexp.Regexp, len(optional)),
	}
	for _, key := range optional {
		g.optional[key] = regexp.MustCompile(`(?:^|\s|>>)` + regexp.QuoteMeta(key) + `\s+<<(.*?)>>`)
	}
	return g
}

// Keys returns the required keys followed by the optional ones.
func (g *Grammar) Keys() []string {
	keys := make([]string, 0, len(g.Required)+len(g.Optional))
	keys = append(keys, g.Required...)
	return append(keys, g.Optional...)
}

// Parse extracts meta from template. Optional keys that are not present
// resolve to nil. ok is false when the required part does not match.
func (g *Grammar) Parse(template string) (meta Meta, ok bool) {
	m := g.main.FindStringSubmatch(template)
	if m == nil {
		return nil, false
	}

	meta = make(Meta, len(g.Required)+len(g.Optional))
	for i, key := range g.Required {
		meta[key] = m[i+1]
	}

	rest := m[len(m)-1]
	for _, key := range g.Optional {
		if om := g.optional[key].FindStringSubmatch(rest); om != nil {
			meta[key] = om[1]
		} else {
			meta[key] = nil
		}
	}
	return meta, true
}

// Format renders meta in canonical template form: required keys in order,
// then the optional keys that are set, in declaration order.
func (g *Grammar) Format(meta Meta) string {
	var b strings.Builder
	b.WriteString(g.Command)
	for i, key := range g.Required {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(key)
		}
		fmt.Fprintf(&b, " <<%s>>", meta.String(key))
	}
	for _, key := range g.Optional {
		if meta[key] == nil {
			continue
		}
		fmt.Fprintf(&b, " %s <<%s>>", key, meta.String(key))
	}
	return b.String()
}
