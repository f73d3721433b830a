package engine

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/twitter/procsched/scheduler/domain"
)

// ProcessView is a copy of one process record.
type ProcessView struct {
	Pid       domain.Pid
	State     domain.ProcessState
	Priority  domain.Priority
	Parent    domain.Pid
	Children  []domain.Pid
	Resources []domain.Grant
}

// ResourceView is a copy of one resource class record.
type ResourceView struct {
	Rid       domain.Rid
	Inventory int
	Available int
	Waitlist  []domain.WaitEntry
}

// Snapshot is a deep copy of the engine state. Slices are never nil.
type Snapshot struct {
	Running     domain.Pid
	Processes   []ProcessView // live processes, by pid
	Resources   []ResourceView
	ReadyQueues [][]domain.Pid // indexed by priority
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Running:     e.running,
		Processes:   []ProcessView{},
		Resources:   make([]ResourceView, 0, len(e.resources.classes)),
		ReadyQueues: make([][]domain.Pid, domain.NumPriorities),
	}
	for i := range e.procs.slots {
		if v, ok := e.Process(domain.Pid(i)); ok {
			s.Processes = append(s.Processes, v)
		}
	}
	for i := range e.resources.classes {
		v, _ := e.Resource(domain.Rid(i))
		s.Resources = append(s.Resources, v)
	}
	for p, q := range e.ready {
		s.ReadyQueues[p] = append([]domain.Pid{}, q...)
	}
	return s
}

// Process returns a copy of the record of pid, false if the slot is empty.
func (e *Engine) Process(pid domain.Pid) (ProcessView, bool) {
	p, ok := e.procs.get(pid)
	if !ok {
		return ProcessView{}, false
	}
	return ProcessView{
		Pid:       pid,
		State:     p.state,
		Priority:  p.priority,
		Parent:    p.parent,
		Children:  append([]domain.Pid{}, p.children...),
		Resources: append([]domain.Grant{}, p.resources...),
	}, true
}

// Resource returns a copy of the record of rid, false if rid is not a class.
func (e *Engine) Resource(rid domain.Rid) (ResourceView, bool) {
	rc, ok := e.resources.get(rid)
	if !ok {
		return ResourceView{}, false
	}
	return ResourceView{
		Rid:       rid,
		Inventory: rc.inventory,
		Available: rc.available,
		Waitlist:  append([]domain.WaitEntry{}, rc.waitlist...),
	}, true
}

// Dump renders the whole engine state for debugging.
func (e *Engine) Dump() string {
	return spew.Sdump(e.Snapshot())
}
