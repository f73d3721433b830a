package engine

import (
	"math/bits"

	"github.com/twitter/procsched/scheduler/domain"
)

// Contains all the information for a live process
type pcb struct {
	state     domain.ProcessState
	priority  domain.Priority
	parent    domain.Pid   // domain.NoPid only for the root
	children  []domain.Pid // creation order, no duplicates
	resources []domain.Grant
}

func newPCB(priority domain.Priority, parent domain.Pid) *pcb {
	return &pcb{
		state:    domain.Ready,
		priority: priority,
		parent:   parent,
	}
}

// Index of the first grant equal to (rid, units), or -1.
func (p *pcb) findGrant(rid domain.Rid, units int) int {
	for i, g := range p.resources {
		if g.Rid == rid && g.Units == units {
			return i
		}
	}
	return -1
}

func (p *pcb) removeGrant(i int) {
	p.resources = append(p.resources[:i], p.resources[i+1:]...)
}

func (p *pcb) removeChild(pid domain.Pid) bool {
	for i, c := range p.children {
		if c == pid {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return true
		}
	}
	return false
}

// processTable is a fixed capacity arena of process records indexed by pid.
// A set bit in used marks an occupied slot.
type processTable struct {
	slots []*pcb
	used  []uint64
}

func newProcessTable(capacity int) *processTable {
	return &processTable{
		slots: make([]*pcb, capacity),
		used:  make([]uint64, (capacity+63)/64),
	}
}

// Clears every slot and installs the root process.
func (t *processTable) reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
	for i := range t.used {
		t.used[i] = 0
	}
	t.put(domain.RootPid, newPCB(domain.P0, domain.NoPid))
}

func (t *processTable) capacity() int {
	return len(t.slots)
}

func (t *processTable) inRange(pid domain.Pid) bool {
	return pid >= 0 && int(pid) < len(t.slots)
}

func (t *processTable) get(pid domain.Pid) (*pcb, bool) {
	if !t.inRange(pid) || t.slots[pid] == nil {
		return nil, false
	}
	return t.slots[pid], true
}

// alloc stores p in the lowest free slot. Returns false if the table is full.
func (t *processTable) alloc(p *pcb) (domain.Pid, bool) {
	for w, word := range t.used {
		if word == ^uint64(0) {
			continue
		}
		i := w*64 + bits.TrailingZeros64(^word)
		if i >= len(t.slots) {
			break
		}
		pid := domain.Pid(i)
		t.put(pid, p)
		return pid, true
	}
	return domain.NoPid, false
}

func (t *processTable) put(pid domain.Pid, p *pcb) {
	t.slots[pid] = p
	t.used[pid/64] |= 1 << (uint(pid) % 64)
}

func (t *processTable) free(pid domain.Pid) {
	t.slots[pid] = nil
	t.used[pid/64] &^= 1 << (uint(pid) % 64)
}

func (t *processTable) live() int {
	n := 0
	for _, word := range t.used {
		n += bits.OnesCount64(word)
	}
	return n
}
