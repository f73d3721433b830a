package driver

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Checker is a Scheduler that can verify and describe its own state.
type Checker interface {
	Scheduler
	CheckInvariants() error
	Dump() string
}

// CheckError reports the first instruction that left the scheduler inconsistent.
type CheckError struct {
	Batch       int // 1-based
	Instruction Instruction
	Violation   error
	Dump        string // scheduler state right after the instruction
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("batch %d, line %d %q: %v", e.Batch, e.Instruction.Line, e.Instruction.String(), e.Violation)
}

// Check runs every batch of in, verifying the scheduler state after each
// reset and each instruction. It stops at the first violation.
func (r *Runner) Check(in io.Reader) error {
	c, ok := r.sched.(Checker)
	if !ok {
		return fmt.Errorf("scheduler %T cannot check its own state", r.sched)
	}
	batches, err := Parse(in)
	if err != nil {
		return err
	}

	instructions := 0
	for i, b := range batches {
		c.Init()
		if err := c.CheckInvariants(); err != nil {
			return errors.WithStack(&CheckError{Batch: i + 1, Instruction: Instruction{Mnemonic: MnemonicInit}, Violation: err, Dump: c.Dump()})
		}
		for _, inst := range b.Instructions {
			r.Execute(inst)
			instructions++
			if err := c.CheckInvariants(); err != nil {
				return errors.WithStack(&CheckError{Batch: i + 1, Instruction: inst, Violation: err, Dump: c.Dump()})
			}
		}
	}
	log.Infof("checked %d batch(es), %d instruction(s): no violations", len(batches), instructions)
	return nil
}
