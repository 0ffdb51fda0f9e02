package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// clickScript clicks the first element matching the selector argument and
// reports whether one was found.
const clickScript = `(selector) => {
  const item = document.querySelector(selector);
  if (item && item.click instanceof Function) {
    item.click();
    return true;
  }
  return false;
}`

// ClickOnCommand clicks an element.
type ClickOnCommand struct {
	grammar *Grammar
}

// NewClickOnCommand creates the click_on command.
func NewClickOnCommand() *ClickOnCommand {
	return &ClickOnCommand{
		grammar: NewGrammar("click_on", []string{"selector"}, "note"),
	}
}

// Name returns the command name.
func (c *ClickOnCommand) Name() string {
	return "click_on"
}

func (c *ClickOnCommand) MetaKeys() []string {
	return c.grammar.Keys()
}

func (c *ClickOnCommand) Grammar() *Grammar {
	return c.grammar
}

func (c *ClickOnCommand) Validate(_ *Formatter, meta Meta) error {
	selector := meta["selector"]
	return validate.All(
		validate.StringNotEmpty("selector")(selector),
		validate.StringLengthMinMax("selector", 1, maxSelectorLength)(selector),
		noteRule()(meta["note"]),
	)
}

func (c *ClickOnCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	selector := meta.String("selector")
	start := time.Now()

	found, err := x.Page.Evaluate(ctx, clickScript, selector)
	if err != nil {
		return nil, fmt.Errorf("click on failed: %w", err)
	}
	if clicked, _ := found.(bool); !clicked {
		return nil, fmt.Errorf("Click on failed! Item '%s' not found!", selector)
	}

	return &Result{
		Summary:  fmt.Sprintf("click_on <<%s>>", selector),
		Duration: time.Since(start).Milliseconds(),
		Note:     meta.String("note"),
	}, nil
}
