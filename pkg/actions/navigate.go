package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/browser"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/config"
	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

const (
	maxNoteLength     = 1024
	maxSelectorLength = 512
	maxValueLength    = 2048
	maxDuration       = int64(config.Hour / time.Millisecond)
)

func noteRule() validate.Rule {
	return validate.StringLengthMinMax("note", 0, maxNoteLength)
}

// optionalSummary renders " key <<value>>" for a value that is set.
func optionalSummary(key string, v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(" %s <<%v>>", key, v)
}

// GoToCommand navigates the page to a URL.
type GoToCommand struct {
	grammar *Grammar
}

// NewGoToCommand creates the go_to command.
func NewGoToCommand() *GoToCommand {
	return &GoToCommand{
		grammar: NewGrammar("go_to", []string{"url"}, "waitUntil", "timeout", "note"),
	}
}

// Name returns the command name.
func (c *GoToCommand) Name() string {
	return "go_to"
}

func (c *GoToCommand) MetaKeys() []string {
	return c.grammar.Keys()
}

func (c *GoToCommand) Grammar() *Grammar {
	return c.grammar
}

// Validate coerces a set timeout to milliseconds. A blank timeout (absent,
// empty or zero) stays unset.
func (c *GoToCommand) Validate(_ *Formatter, meta Meta) error {
	if isBlank(meta["timeout"]) {
		meta["timeout"] = nil
	} else {
		meta["timeout"] = intOrZero(meta["timeout"])
	}

	url := meta["url"]
	return validate.All(
		validate.StringNotEmpty("url")(url),
		validate.StringLengthMinMax("url", 2, 512)(url),
		validate.Enum("waitUntil", config.WaitUntilValues)(meta["waitUntil"]),
		validate.NumberMinMax("timeout", 0, maxDuration)(meta["timeout"]),
		noteRule()(meta["note"]),
	)
}

// Execute navigates and reports the resulting page title. A failing title
// lookup is reported as an empty title.
func (c *GoToCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	url := meta.String("url")
	start := time.Now()

	opts := browser.NavigateOptions{
		WaitUntil: meta.String("waitUntil"),
		Timeout:   x.Defaults.NavigationTimeout,
	}
	if opts.WaitUntil == "" {
		opts.WaitUntil = x.Defaults.WaitUntil
	}
	if ms, ok := meta.Int("timeout"); ok && ms > 0 {
		opts.Timeout = time.Duration(ms) * time.Millisecond
	}

	if err := x.Page.Navigate(ctx, url, opts); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	title, err := x.Page.Title(ctx)
	if err != nil {
		debugLog.Debugf("Ignoring title lookup error after go_to %s: %v", url, err)
		title = ""
	}

	return &Result{
		Summary:   "go_to <<" + url + ">>" + optionalSummary("waitUntil", meta["waitUntil"]) + optionalSummary("timeout", meta["timeout"]),
		Duration:  time.Since(start).Milliseconds(),
		Note:      meta.String("note"),
		PageTitle: title,
	}, nil
}
