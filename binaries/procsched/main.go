package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	commonerrors "github.com/twitter/procsched/common/errors"
	"github.com/twitter/procsched/common/log/hooks"
	"github.com/twitter/procsched/scheduler/client/cli"
)

// CLI binary to run the process scheduler simulator
//	Supported commands: (see "-h" for all options)
//		run [--input input.txt] [--output output.txt] [--format crlf|unix]
//		shell [--prompt "> "]
//		check [--input input.txt]
//		show_config [--json]
//	Global flags:
//		--config [<built-in name>|<file.yaml>|<literal yaml>]
//		--log_level [<error|info|debug> level and above should be logged]
//		--stats [print collected stats as JSON to stderr when done]

func main() {
	log.AddHook(hooks.NewContextHook())

	cl, err := cli.NewCLIClient(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal("Failed to create new procsched CLI client: ", err)
	}

	if err := cl.Exec(); err != nil {
		log.Error("Error running procsched: ", err)
		os.Exit(int(commonerrors.GetExitCode(err)))
	}
}
