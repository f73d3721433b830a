package hooks

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook(t *testing.T) {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	logger.AddHook(NewContextHook())
	recorder := test.NewLocal(logger)

	logger.Info("hello")
	logger.WithField("k", "v").Warn("world")

	entries := recorder.AllEntries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		where, ok := e.Data["file:line"].(string)
		require.True(t, ok, "%v", e.Data)
		assert.True(t, strings.Contains(where, "context_hook_test.go:"), where)
	}
	assert.Equal(t, "v", entries[1].Data["k"])
}

func TestLevels(t *testing.T) {
	assert.Equal(t, logrus.AllLevels, NewContextHook().Levels())
}

func TestTrimPath(t *testing.T) {
	assert.Equal(t, "scheduler/engine/engine.go", trimPath("/src/github.com/twitter/procsched/scheduler/engine/engine.go"))
	assert.Equal(t, "/tmp/x.go", trimPath("/tmp/x.go"))
}
