package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// GroupCommand runs a named list of nested commands on the same page. It
// has no template form.
type GroupCommand struct{}

// NewGroupCommand creates the group command.
func NewGroupCommand() *GroupCommand {
	return &GroupCommand{}
}

// Name returns the command name.
func (c *GroupCommand) Name() string {
	return "group"
}

func (c *GroupCommand) MetaKeys() []string {
	return []string{"actions", "groupName", "note"}
}

func (c *GroupCommand) Grammar() *Grammar {
	return nil
}

// Validate formats the nested actions in place, then checks the group
// fields. A nested formatting error is returned unchanged.
func (c *GroupCommand) Validate(f *Formatter, meta Meta) error {
	nested, err := f.FormatActions(meta["actions"])
	if err != nil {
		return err
	}
	meta["actions"] = nested

	name := meta["groupName"]
	return validate.All(
		validate.StringNotEmpty("groupName")(name),
		validate.StringLengthMinMax("groupName", 1, 512)(name),
		noteRule()(meta["note"]),
	)
}

func (c *GroupCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	nested, _ := meta["actions"].([]Instance)
	name := meta.String("groupName")
	start := time.Now()

	report, err := x.Run(ctx, nested)

	// On failure the result carries the nested commands that completed.
	return &Result{
		Summary:  fmt.Sprintf("group '%s' with %d actions", name, len(nested)),
		Duration: time.Since(start).Milliseconds(),
		Note:     meta.String("note"),
		Result:   report,
	}, err
}
