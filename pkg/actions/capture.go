package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// CaptureScreenCommand saves a screenshot of the page.
type CaptureScreenCommand struct {
	grammar *Grammar
	guard   *PathGuard
}

// NewCaptureScreenCommand creates the capture_screen command. A nil guard
// accepts every path.
func NewCaptureScreenCommand(guard *PathGuard) *CaptureScreenCommand {
	return &CaptureScreenCommand{
		grammar: NewGrammar("capture_screen", []string{"path"}, "note"),
		guard:   guard,
	}
}

// Name returns the command name.
func (c *CaptureScreenCommand) Name() string {
	return "capture_screen"
}

func (c *CaptureScreenCommand) MetaKeys() []string {
	return c.grammar.Keys()
}

func (c *CaptureScreenCommand) Grammar() *Grammar {
	return c.grammar
}

func (c *CaptureScreenCommand) Validate(_ *Formatter, meta Meta) error {
	path := meta["path"]
	return validate.All(
		validate.StringNotEmpty("path")(path),
		validate.StringLengthMinMax("path", 1, 512)(path),
		c.guard.Rule("path")(path),
		noteRule()(meta["note"]),
	)
}

// Execute writes the screenshot. Relative paths are resolved against the
// configured screenshot directory, which is created when missing.
func (c *CaptureScreenCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	path := meta.String("path")
	start := time.Now()

	target := path
	if !filepath.IsAbs(target) && x.Defaults.ScreenshotDir != "" {
		target = filepath.Join(x.Defaults.ScreenshotDir, target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	if err := x.Page.Screenshot(ctx, target); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	return &Result{
		Summary:  fmt.Sprintf("capture_screen to <<%s>>", path),
		Duration: time.Since(start).Milliseconds(),
		Note:     meta.String("note"),
	}, nil
}
