package cli

/**
implements the command line entry for the interactive shell
*/

import (
	"github.com/spf13/cobra"

	"github.com/twitter/procsched/common/client"
	commonerrors "github.com/twitter/procsched/common/errors"
	"github.com/twitter/procsched/scheduler/driver"
)

type shellCmd struct {
	prompt string
}

func (c *shellCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "shell",
		Short: "Read instructions from stdin and print each result as it runs. A blank line starts a new batch.",
	}
	r.Flags().StringVar(&c.prompt, "prompt", "> ", "Prompt printed before each line")
	return r
}

func (c *shellCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	e, err := newEngine(cl)
	if err != nil {
		return err
	}
	err = driver.NewRunner(e, cl.Stat.Scope("driver")).Shell(cl.In, cl.Out, c.prompt)
	if err == nil {
		return nil
	}
	if driver.IsOutputError(err) {
		return commonerrors.NewError(err, commonerrors.OutputWriteFailureExitCode)
	}
	return commonerrors.NewError(err, commonerrors.InputReadFailureExitCode)
}
