package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/procsched/scheduler/domain"
)

func Test_ProcessTable_AllocLowestFree(t *testing.T) {
	pt := newProcessTable(4)
	pt.reset()
	assert.Equal(t, 1, pt.live())

	for want := domain.Pid(1); want < 4; want++ {
		pid, ok := pt.alloc(newPCB(domain.P1, 0))
		require.True(t, ok)
		assert.Equal(t, want, pid)
	}
	_, ok := pt.alloc(newPCB(domain.P1, 0))
	assert.False(t, ok)
	assert.Equal(t, 4, pt.live())

	pt.free(2)
	pt.free(1)
	pid, ok := pt.alloc(newPCB(domain.P2, 0))
	require.True(t, ok)
	assert.Equal(t, domain.Pid(1), pid)
	assert.Equal(t, 3, pt.live())
}

func Test_ProcessTable_Wide(t *testing.T) {
	// more than one bitset word, capacity not a multiple of 64
	pt := newProcessTable(70)
	pt.reset()
	for i := 1; i < 70; i++ {
		pid, ok := pt.alloc(newPCB(domain.P0, 0))
		require.True(t, ok)
		require.Equal(t, domain.Pid(i), pid)
	}
	_, ok := pt.alloc(newPCB(domain.P0, 0))
	assert.False(t, ok)

	pt.free(65)
	pid, ok := pt.alloc(newPCB(domain.P0, 0))
	require.True(t, ok)
	assert.Equal(t, domain.Pid(65), pid)
}

func Test_ProcessTable_Get(t *testing.T) {
	pt := newProcessTable(4)
	pt.reset()

	root, ok := pt.get(0)
	require.True(t, ok)
	assert.Equal(t, domain.NoPid, root.parent)
	assert.Equal(t, domain.Ready, root.state)

	for _, pid := range []domain.Pid{-1, 1, 4} {
		_, ok := pt.get(pid)
		assert.False(t, ok, "pid %d", pid)
	}
	assert.False(t, pt.inRange(4))
	assert.True(t, pt.inRange(3))
}

func Test_PCB_Grants(t *testing.T) {
	p := newPCB(domain.P1, 0)
	p.resources = grants(1, 1, 3, 2, 3, 2)

	assert.Equal(t, 1, p.findGrant(3, 2))
	assert.Equal(t, -1, p.findGrant(3, 1))
	p.removeGrant(1)
	assert.Equal(t, grants(1, 1, 3, 2), p.resources)

	p.children = pids(4, 5, 6)
	assert.True(t, p.removeChild(5))
	assert.False(t, p.removeChild(5))
	assert.Equal(t, pids(4, 6), p.children)
}

func Test_ReadyQueues(t *testing.T) {
	var q readyQueues
	q.reset()
	pid, ok := q.highest()
	require.True(t, ok)
	assert.Equal(t, domain.RootPid, pid)

	q.push(domain.P1, 1)
	q.push(domain.P1, 2)
	q.push(domain.P2, 3)
	pid, _ = q.highest()
	assert.Equal(t, domain.Pid(3), pid)

	assert.True(t, q.remove(domain.P2, 3))
	assert.False(t, q.remove(domain.P2, 3))
	pid, _ = q.highest()
	assert.Equal(t, domain.Pid(1), pid)

	q.rotate(domain.P1)
	assert.Equal(t, pids(2, 1), q[domain.P1])
	q.rotate(domain.P0)
	assert.Equal(t, pids(0), q[domain.P0])

	_, ok = q.head(domain.P2)
	assert.False(t, ok)

	q.reset()
	assert.Equal(t, pids(0), q[domain.P0])
	assert.Empty(t, q[domain.P1])
	assert.Empty(t, q[domain.P2])
}

func Test_ResourceTable_RemoveWaiter(t *testing.T) {
	rt := newResourceTable([]int{3})
	rc, ok := rt.get(0)
	require.True(t, ok)
	assert.Equal(t, 3, rc.available)
	_, ok = rt.get(1)
	assert.False(t, ok)

	rc.waitlist = waiters(1, 1, 2, 2, 1, 3)
	assert.Equal(t, 2, rc.removeWaiter(1))
	assert.Equal(t, waiters(2, 2), rc.waitlist)
	assert.Equal(t, 0, rc.removeWaiter(1))
}
