package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// setValueScript assigns value to the first element matching selector and
// reports whether one was found.
const setValueScript = `({ selector, value }) => {
  const item = document.querySelector(selector);
  if (item) {
    item.value = value;
    return true;
  }
  return false;
}`

// SetValueCommand assigns a value to a form element. input_to and
// select_on share it and differ only in name and failure message.
type SetValueCommand struct {
	name    string
	failure string
	grammar *Grammar
}

// NewInputToCommand creates the input_to command.
func NewInputToCommand() *SetValueCommand {
	return newSetValueCommand("input_to", "Input to failed!")
}

// NewSelectOnCommand creates the select_on command.
func NewSelectOnCommand() *SetValueCommand {
	return newSetValueCommand("select_on", "Select on failed!")
}

func newSetValueCommand(name, failure string) *SetValueCommand {
	return &SetValueCommand{
		name:    name,
		failure: failure,
		grammar: NewGrammar(name, []string{"selector", "value"}, "note"),
	}
}

// Name returns the command name.
func (c *SetValueCommand) Name() string {
	return c.name
}

func (c *SetValueCommand) MetaKeys() []string {
	return c.grammar.Keys()
}

func (c *SetValueCommand) Grammar() *Grammar {
	return c.grammar
}

func (c *SetValueCommand) Validate(_ *Formatter, meta Meta) error {
	selector := meta["selector"]
	return validate.All(
		validate.StringNotEmpty("selector")(selector),
		validate.StringLengthMinMax("selector", 1, maxSelectorLength)(selector),
		validate.StringMaxLength("value", maxValueLength)(meta["value"]),
		noteRule()(meta["note"]),
	)
}

func (c *SetValueCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	selector := meta.String("selector")
	value := meta.String("value")
	start := time.Now()

	found, err := x.Page.Evaluate(ctx, setValueScript, map[string]any{
		"selector": selector,
		"value":    value,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if set, _ := found.(bool); !set {
		return nil, fmt.Errorf("%s Item '%s' not found!", c.failure, selector)
	}

	return &Result{
		Summary:  fmt.Sprintf("%s <<%s>> value <<%s>>", c.name, selector, value),
		Duration: time.Since(start).Milliseconds(),
		Note:     meta.String("note"),
	}, nil
}
