package client

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/twitter/procsched/common/stats"
	"github.com/twitter/procsched/scheduler/config"
)

// Client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// SimpleClient includes base fields required for implementing client
type SimpleClient struct {
	RootCmd    *cobra.Command
	LogLevel   string
	ConfigFlag string
	PrintStats bool

	// Set by the root command before any subcommand runs.
	Config config.Config
	Stat   stats.StatsReceiver

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command interface used to run client commands
type Cmd interface {
	RegisterFlags() *cobra.Command
	Run(cl *SimpleClient, cmd *cobra.Command, args []string) error
}
