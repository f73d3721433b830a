package engine

import (
	"github.com/twitter/procsched/scheduler/domain"
)

// readyQueues holds one FIFO of runnable pids per priority level.
type readyQueues [domain.NumPriorities][]domain.Pid

// Leaves only the root process, in the lowest queue.
func (q *readyQueues) reset() {
	for i := range q {
		q[i] = q[i][:0]
	}
	q[domain.P0] = append(q[domain.P0], domain.RootPid)
}

func (q *readyQueues) push(p domain.Priority, pid domain.Pid) {
	q[p] = append(q[p], pid)
}

func (q *readyQueues) remove(p domain.Priority, pid domain.Pid) bool {
	for i, id := range q[p] {
		if id == pid {
			q[p] = append(q[p][:i], q[p][i+1:]...)
			return true
		}
	}
	return false
}

func (q *readyQueues) head(p domain.Priority) (domain.Pid, bool) {
	if len(q[p]) == 0 {
		return domain.NoPid, false
	}
	return q[p][0], true
}

// Moves the head of queue p to its tail.
func (q *readyQueues) rotate(p domain.Priority) {
	if len(q[p]) < 2 {
		return
	}
	head := q[p][0]
	q[p] = append(q[p][1:], head)
}

// highest returns the head of the highest priority non-empty queue.
func (q *readyQueues) highest() (domain.Pid, bool) {
	for p := domain.P2; p >= domain.P0; p-- {
		if pid, ok := q.head(p); ok {
			return pid, true
		}
	}
	return domain.NoPid, false
}
