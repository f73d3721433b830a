package engine

import (
	"fmt"
	"strings"

	"github.com/twitter/procsched/scheduler/domain"
)

// InvariantError lists every consistency rule the engine state breaks.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%d invariant violation(s): %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// CheckInvariants inspects the whole engine state. It returns nil or an
// *InvariantError, it never panics.
func (e *Engine) CheckInvariants() error {
	var v []string
	fail := func(format string, args ...interface{}) {
		v = append(v, fmt.Sprintf(format, args...))
	}

	root, ok := e.procs.get(domain.RootPid)
	if !ok {
		fail("root process missing")
	} else {
		if root.state != domain.Ready {
			fail("root process is %s", root.state)
		}
		if root.parent != domain.NoPid {
			fail("root process has parent %d", root.parent)
		}
		if root.priority != domain.P0 {
			fail("root process has priority %s", root.priority)
		}
	}

	if highest, ok := e.ready.highest(); !ok || highest != e.running {
		fail("running process is %d, head of the highest ready queue is %d", e.running, highest)
	}

	// forest
	for i, p := range e.procs.slots {
		pid := domain.Pid(i)
		if p == nil {
			continue
		}
		if pid != domain.RootPid {
			parent, ok := e.procs.get(p.parent)
			if !ok {
				fail("process %d has missing parent %d", pid, p.parent)
			} else if n := count(parent.children, pid); n != 1 {
				fail("process %d listed %d times among the children of %d", pid, n, p.parent)
			}
			if !e.reachesRoot(pid) {
				fail("parent chain of process %d does not reach the root", pid)
			}
		}
		for _, c := range p.children {
			child, ok := e.procs.get(c)
			if !ok {
				fail("process %d has missing child %d", pid, c)
			} else if child.parent != pid {
				fail("process %d lists child %d whose parent is %d", pid, c, child.parent)
			}
		}
	}

	// ready queues
	seen := map[domain.Pid]int{}
	for prio, q := range e.ready {
		for _, pid := range q {
			seen[pid]++
			p, ok := e.procs.get(pid)
			if !ok {
				fail("ready queue %s holds missing process %d", domain.Priority(prio), pid)
				continue
			}
			if p.state != domain.Ready {
				fail("ready queue %s holds %s process %d", domain.Priority(prio), p.state, pid)
			}
			if p.priority != domain.Priority(prio) {
				fail("ready queue %s holds process %d of priority %s", domain.Priority(prio), pid, p.priority)
			}
		}
	}

	// waitlists
	waiting := map[domain.Pid]int{}
	for rid, rc := range e.resources.classes {
		for _, w := range rc.waitlist {
			waiting[w.Pid]++
			if w.Units < 1 || w.Units > rc.inventory {
				fail("resource %d waitlist entry %v outside [1, %d]", rid, w, rc.inventory)
			}
			if p, ok := e.procs.get(w.Pid); !ok {
				fail("resource %d waitlist holds missing process %d", rid, w.Pid)
			} else if p.state != domain.Blocked {
				fail("resource %d waitlist holds %s process %d", rid, p.state, w.Pid)
			}
		}
	}

	for i, p := range e.procs.slots {
		pid := domain.Pid(i)
		if p == nil {
			continue
		}
		switch p.state {
		case domain.Ready:
			if seen[pid] != 1 {
				fail("ready process %d appears %d times in the ready queues", pid, seen[pid])
			}
			if waiting[pid] != 0 {
				fail("ready process %d appears in a waitlist", pid)
			}
		case domain.Blocked:
			if seen[pid] != 0 {
				fail("blocked process %d appears in a ready queue", pid)
			}
			if waiting[pid] != 1 {
				fail("blocked process %d has %d waitlist entries", pid, waiting[pid])
			}
		}
	}

	// unit accounting
	held := make([]int, len(e.resources.classes))
	for i, p := range e.procs.slots {
		if p == nil {
			continue
		}
		for _, g := range p.resources {
			if _, ok := e.resources.get(g.Rid); !ok || g.Units < 1 {
				fail("process %d holds invalid grant %v", i, g)
				continue
			}
			held[g.Rid] += g.Units
		}
	}
	for rid, rc := range e.resources.classes {
		if rc.available < 0 || rc.available > rc.inventory {
			fail("resource %d available %d outside [0, %d]", rid, rc.available, rc.inventory)
		}
		if rc.available+held[rid] != rc.inventory {
			fail("resource %d: available %d + held %d != inventory %d", rid, rc.available, held[rid], rc.inventory)
		}
	}

	if len(v) == 0 {
		return nil
	}
	return &InvariantError{Violations: v}
}

func (e *Engine) reachesRoot(pid domain.Pid) bool {
	cur := pid
	for steps := 0; steps <= e.procs.capacity(); steps++ {
		if cur == domain.RootPid {
			return true
		}
		p, ok := e.procs.get(cur)
		if !ok {
			return false
		}
		cur = p.parent
	}
	return false
}

func count(pids []domain.Pid, pid domain.Pid) int {
	n := 0
	for _, p := range pids {
		if p == pid {
			n++
		}
	}
	return n
}
