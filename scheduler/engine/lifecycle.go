package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/twitter/procsched/scheduler/domain"
)

// isDescendant walks parent links up from pid and reports whether it meets
// ancestor before passing the root. A pid is its own descendant.
func (e *Engine) isDescendant(pid, ancestor domain.Pid) bool {
	cur := pid
	// a chain longer than the table means the forest has a cycle
	for steps := 0; steps <= e.procs.capacity(); steps++ {
		if cur == ancestor {
			return true
		}
		if cur == domain.RootPid {
			return false
		}
		cur = e.mustProcess(cur).parent
	}
	log.Panicf("parent chain of process %d does not reach the root", pid)
	return false
}

// subtree lists pid and all of its descendants, every process after all of its
// descendants, so the list can be destroyed front to back.
func (e *Engine) subtree(pid domain.Pid) []domain.Pid {
	var order []domain.Pid
	stack := []domain.Pid{pid}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		children := e.mustProcess(cur).children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		if len(order) > e.procs.capacity() {
			log.Panicf("subtree of process %d is larger than the process table", pid)
		}
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// removeProcess detaches a childless process from every structure, hands its
// grants back through the release protocol and frees its slot.
func (e *Engine) removeProcess(pid domain.Pid) {
	p := e.mustProcess(pid)
	if len(p.children) != 0 {
		log.Panicf("process %d destroyed before its children %v", pid, p.children)
	}

	e.ready.remove(p.priority, pid)
	for _, rc := range e.resources.classes {
		rc.removeWaiter(pid)
	}
	if parent, ok := e.procs.get(p.parent); !ok || !parent.removeChild(pid) {
		log.Panicf("process %d missing from the children of its parent %d", pid, p.parent)
	}

	grants := p.resources
	p.resources = nil
	for _, g := range grants {
		e.restore(pid, g.Rid, g.Units)
	}

	e.procs.free(pid)
	e.emit(domain.Event{Type: domain.EventDestroyed, Pid: pid, Parent: p.parent, Priority: p.priority, State: p.state})
}
