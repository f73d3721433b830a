package cli

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	commoncli "github.com/twitter/procsched/common/client"
	commonerrors "github.com/twitter/procsched/common/errors"
	"github.com/twitter/procsched/common/stats"
	"github.com/twitter/procsched/scheduler/config"
	"github.com/twitter/procsched/scheduler/engine"
)

// ProcschedCLIClient includes fields required for CLI client handling
type ProcschedCLIClient struct {
	commoncli.SimpleClient
}

func (c *ProcschedCLIClient) Exec() error {
	return c.RootCmd.Execute()
}

// NewCLIClient builds the procsched command tree. Commands read from in and
// write results to out, reports and rendered stats go to errOut.
func NewCLIClient(in io.Reader, out, errOut io.Writer) (commoncli.CLIClient, error) {
	c := &ProcschedCLIClient{}
	c.In, c.Out, c.ErrOut = in, out, errOut

	c.RootCmd = &cobra.Command{
		Use:                "procsched",
		Short:              "procsched simulates a priority process and resource scheduler",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.Init,
		Run:                func(*cobra.Command, []string) {},
		PersistentPostRunE: c.Close,
	}
	c.RootCmd.SetOutput(errOut)
	c.RootCmd.PersistentFlags().StringVar(&c.LogLevel, "log_level", "",
		"Log everything at this level and above (error|info|debug). Overrides the config.")
	c.RootCmd.PersistentFlags().StringVar(&c.ConfigFlag, "config", config.DefaultConfigName,
		fmt.Sprintf("Built-in config name %v, a .yaml/.json file, or literal YAML", config.Names()))
	c.RootCmd.PersistentFlags().BoolVar(&c.PrintStats, "stats", false, "Print the collected stats as JSON when done")

	c.addCmd(&runCmd{})
	c.addCmd(&shellCmd{})
	c.addCmd(&checkCmd{})
	c.addCmd(&showConfigCmd{})

	return c, nil
}

// Can only be called from cobra command run or hook
func (c *ProcschedCLIClient) Init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.ConfigFlag)
	if err != nil {
		return commonerrors.NewError(err, commonerrors.ConfigFailureExitCode)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		log.Error(err)
		return commonerrors.NewError(err, commonerrors.ConfigFailureExitCode)
	}
	log.SetLevel(level)
	log.Debugf("config:\n%s", cfg)

	c.Config = cfg
	c.Stat = stats.DefaultStatsReceiver().Scope("procsched")
	return nil
}

// Needs cobra parameters for use from rootCmd
func (c *ProcschedCLIClient) Close(cmd *cobra.Command, args []string) error {
	if c.PrintStats && c.Stat != nil {
		if _, err := fmt.Fprintf(c.ErrOut, "%s\n", c.Stat.Render(true)); err != nil {
			return commonerrors.NewError(err, commonerrors.OutputWriteFailureExitCode)
		}
	}
	return nil
}

func (c *ProcschedCLIClient) addCmd(cmd commoncli.Cmd) {
	cobraCmd := cmd.RegisterFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.Run(&c.SimpleClient, innerCmd, args)
	}
	c.RootCmd.AddCommand(cobraCmd)
}

// newEngine builds an engine from the client config, logging its transitions
// and counting them in the client stats.
func newEngine(cl *commoncli.SimpleClient) (*engine.Engine, error) {
	e, err := engine.NewEngine(cl.Config.EngineConfig(), engine.MultiListener(
		engine.NewLoggingListener(log.WithField("component", "engine")),
		engine.NewStatsListener(cl.Stat.Scope("engine")),
	))
	if err != nil {
		return nil, commonerrors.NewError(err, commonerrors.ConfigFailureExitCode)
	}
	return e, nil
}
