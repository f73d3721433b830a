package engine

import (
	"os"
	"reflect"
	"testing"

	"github.com/luci/go-render/render"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/twitter/procsched/scheduler/domain"
)

// Used to get proper logging from tests...
func init() {
	if loglevel := os.Getenv("PROCSCHED_LOGLEVEL"); loglevel != "" {
		level, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Error(err)
			return
		}
		log.SetLevel(level)
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

// newTestEngine returns a default engine that panics on any invariant violation.
func newTestEngine(t *testing.T, listener Listener) *Engine {
	config := DefaultConfig()
	config.DebugMode = true
	e, err := NewEngine(config, listener)
	require.NoError(t, err)
	return e
}

// step runs an operation that must succeed and checks the pid it returns.
func step(t *testing.T, expected domain.Pid, pid domain.Pid, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, expected, pid)
}

// rejected checks an operation failed with kind and changed nothing.
func rejected(t *testing.T, e *Engine, before Snapshot, kind domain.Kind, pid domain.Pid, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, domain.IsKind(err, kind), "expected %s, got %v", kind, err)
	require.Equal(t, domain.NoPid, pid)
	after := e.Snapshot()
	if !snapshotsEqual(before, after) {
		t.Fatalf("rejected operation changed state.\nBefore: %s\nAfter: %s", render.Render(before), render.Render(after))
	}
}

func snapshotsEqual(a, b Snapshot) bool {
	return reflect.DeepEqual(a, b)
}

func queues(qs ...[]domain.Pid) [][]domain.Pid {
	return qs
}

func pids(ids ...int) []domain.Pid {
	out := []domain.Pid{}
	for _, id := range ids {
		out = append(out, domain.Pid(id))
	}
	return out
}

func grants(pairs ...int) []domain.Grant {
	out := []domain.Grant{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Grant{Rid: domain.Rid(pairs[i]), Units: pairs[i+1]})
	}
	return out
}

func waiters(pairs ...int) []domain.WaitEntry {
	out := []domain.WaitEntry{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.WaitEntry{Pid: domain.Pid(pairs[i]), Units: pairs[i+1]})
	}
	return out
}

func mustView(t *testing.T, e *Engine, pid int) ProcessView {
	t.Helper()
	v, ok := e.Process(domain.Pid(pid))
	require.True(t, ok, "process %d expected to exist", pid)
	return v
}

func mustResource(t *testing.T, e *Engine, rid int) ResourceView {
	t.Helper()
	v, ok := e.Resource(domain.Rid(rid))
	require.True(t, ok, "resource %d expected to exist", rid)
	return v
}
