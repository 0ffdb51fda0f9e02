package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/linhnt2803/simple-web-ui-tester/pkg/validate"
)

// WaitCommand pauses the sequence.
type WaitCommand struct {
	grammar *Grammar
}

// NewWaitCommand creates the wait command.
func NewWaitCommand() *WaitCommand {
	return &WaitCommand{
		grammar: NewGrammar("wait", []string{"milliseconds"}, "note"),
	}
}

// Name returns the command name.
func (c *WaitCommand) Name() string {
	return "wait"
}

func (c *WaitCommand) MetaKeys() []string {
	return c.grammar.Keys()
}

func (c *WaitCommand) Grammar() *Grammar {
	return c.grammar
}

// Validate always resolves milliseconds to a number; unreadable values
// become 0.
func (c *WaitCommand) Validate(_ *Formatter, meta Meta) error {
	meta["milliseconds"] = intOrZero(meta["milliseconds"])
	return validate.All(
		validate.NumberMinMax("milliseconds", 0, maxDuration)(meta["milliseconds"]),
		noteRule()(meta["note"]),
	)
}

// Execute sleeps for the given time or until ctx is done.
func (c *WaitCommand) Execute(ctx context.Context, meta Meta, x *Exec) (*Result, error) {
	ms, _ := meta.Int("milliseconds")
	start := time.Now()

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Result{
		Summary:  fmt.Sprintf("wait <<%d>>", ms),
		Duration: time.Since(start).Milliseconds(),
		Note:     meta.String("note"),
	}, nil
}
