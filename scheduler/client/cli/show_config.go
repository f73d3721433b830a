package cli

/**
implements the command line entry for printing the resolved config
*/

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twitter/procsched/common/client"
)

type showConfigCmd struct {
	printAsJson bool
}

func (c *showConfigCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "show_config",
		Short: "Print the config the other commands would use",
	}
	r.Flags().BoolVar(&c.printAsJson, "json", false, "Print the config as JSON")
	return r
}

func (c *showConfigCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	if c.printAsJson {
		asJson, err := json.Marshal(cl.Config)
		if err != nil {
			return fmt.Errorf("Error converting config to JSON: %v", err.Error())
		}
		fmt.Fprintf(cl.Out, "%s\n", asJson)
		return nil
	}
	fmt.Fprint(cl.Out, cl.Config.String())
	return nil
}
