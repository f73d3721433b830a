package cli

/**
implements the command line entry for checking an input file against the
scheduler invariants
*/

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twitter/procsched/common/client"
	commonerrors "github.com/twitter/procsched/common/errors"
	"github.com/twitter/procsched/scheduler/driver"
)

type checkCmd struct {
	input string
}

func (c *checkCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "check",
		Short: "Run an input file verifying every scheduler invariant after every instruction",
	}
	r.Flags().StringVar(&c.input, "input", "input.txt", "Instruction file, '-' for stdin")
	return r
}

func (c *checkCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	// the driver checks, a panicking engine would hide which line failed
	cl.Config.Engine.DebugMode = false
	e, err := newEngine(cl)
	if err != nil {
		return err
	}
	r := driver.NewRunner(e, cl.Stat.Scope("driver"))

	in := cl.In
	if c.input != "-" {
		f, err := openInput(c.input)
		if err != nil {
			return exitError(err, c.input)
		}
		defer f.Close()
		in = f
	}

	err = r.Check(in)
	if cerr, ok := errors.Cause(err).(*driver.CheckError); ok {
		log.Error(cerr)
		fmt.Fprintf(cl.ErrOut, "%v\nscheduler state:\n%s", cerr, cerr.Dump)
		return commonerrors.NewError(err, commonerrors.CheckFailureExitCode)
	}
	if err != nil {
		return exitError(err, c.input)
	}
	fmt.Fprintln(cl.Out, "ok")
	return nil
}
