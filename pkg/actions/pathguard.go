package actions

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// PathGuard restricts screenshot paths with glob patterns. Denied patterns
// take precedence; with no allowed patterns every other path is accepted.
// A nil *PathGuard accepts everything.
type PathGuard struct {
	allowed []pattern
	denied  []pattern
}

type pattern struct {
	source string
	glob   glob.Glob
}

func compilePatterns(kind string, sources []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(sources))
	for _, src := range sources {
		g, err := glob.Compile(src, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern '%s': %w", kind, src, err)
		}
		patterns = append(patterns, pattern{source: src, glob: g})
	}
	return patterns, nil
}

// NewPathGuard compiles the allow and deny lists. '/' separates path
// segments, so '*' stays within a directory and '**' crosses them.
func NewPathGuard(allowed, denied []string) (*PathGuard, error) {
	a, err := compilePatterns("allowed", allowed)
	if err != nil {
		return nil, err
	}
	d, err := compilePatterns("denied", denied)
	if err != nil {
		return nil, err
	}
	return &PathGuard{allowed: a, denied: d}, nil
}

// Rule returns a validation rule for field that rejects paths the guard
// does not accept. Non-string values are left to other rules.
func (g *PathGuard) Rule(field string) validate.Rule {
	return func(v any) error {
		path, ok := v.(string)
		if !ok || g == nil {
			return nil
		}

		normalized := filepath.ToSlash(filepath.Clean(path))
		for _, p := range g.denied {
			if p.glob.Match(normalized) {
				return &validate.Error{
					Field:  field,
					Value:  path,
					Reason: fmt.Sprintf("is denied by pattern '%s'!", p.source),
				}
			}
		}

		if len(g.allowed) == 0 {
			return nil
		}
		for _, p := range g.allowed {
			if p.glob.Match(normalized) {
				return nil
			}
		}
		return &validate.Error{Field: field, Value: path, Reason: "does not match any allowed pattern!"}
	}
}
