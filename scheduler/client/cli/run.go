package cli

/**
implements the command line entry for running an input file of batches
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

type runCmd struct {
	input  string
	output string
	format string
}

func (c *runCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "run",
		Short: "Run every batch of an input file and write one result line per batch",
	}
	r.Flags().StringVar(&c.input, "input", "input.txt", "Instruction file, '-' for stdin")
	r.Flags().StringVar(&c.output, "output", "output.txt", "Result file, '-' for stdout")
	r.Flags().StringVar(&c.format, "format", "", "Line endings (crlf|unix). Overrides the config.")
	return r
}

func (c *runCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	format, err := c.outputFormat(cl)
	if err != nil {
		return commonerrors.NewError(err, commonerrors.ConfigFailureExitCode)
	}
	e, err := newEngine(cl)
	if err != nil {
		return err
	}
	r := driver.NewRunner(e, cl.Stat.Scope("driver"))

	log.Infof("running %s into %s", c.input, c.output)
	switch {
	case c.input == "-" || c.output == "-":
		err = c.runStreams(cl, r, format)
	default:
		err = r.RunFile(c.input, c.output, format)
	}
	return exitError(err, c.input)
}

func (c *runCmd) runStreams(cl *client.SimpleClient, r *driver.Runner, format driver.OutputFormat) error {
	in, out := cl.In, cl.Out
	if c.input != "-" {
		f, err := openInput(c.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if c.output != "-" {
		f, err := createOutput(c.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return r.Run(in, out, format)
}

func (c *runCmd) outputFormat(cl *client.SimpleClient) (driver.OutputFormat, error) {
	if c.format != "" {
		return driver.ParseOutputFormat(c.format)
	}
	return cl.Config.OutputFormat()
}

// exitError gives driver errors the exit code main should use.
func exitError(err error, input string) error {
	switch {
	case err == nil:
		return nil
	case driver.IsInputNotFound(err):
		return commonerrors.NewError(fmt.Errorf("input file not found: %s", input), commonerrors.InputNotFoundExitCode)
	case driver.IsOutputError(err):
		return commonerrors.NewError(err, commonerrors.OutputWriteFailureExitCode)
	}
	if _, ok := errors.Cause(err).(*driver.ParseError); ok {
		return commonerrors.NewError(err, commonerrors.InputParseFailureExitCode)
	}
	return commonerrors.NewError(err, commonerrors.InputReadFailureExitCode)
}
