package cli

import (
	"os"

	"github.com/pkg/errors"

	"github.com/twitter/procsched/scheduler/driver"
)

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	return f, errors.Wrapf(err, "opening input file %s", path)
}

func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, driver.NewOutputError(errors.Wrapf(err, "creating output file %s", path))
	}
	return f, nil
}
