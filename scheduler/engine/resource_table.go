package engine

import (
	"github.com/twitter/procsched/scheduler/domain"
)

// Contains all the information for one resource class
type rcb struct {
	inventory int                // total units, constant between resets
	available int                // units not granted to any process
	waitlist  []domain.WaitEntry // FIFO arrival order
}

// Drops every waitlist entry of pid. Returns the number removed.
func (r *rcb) removeWaiter(pid domain.Pid) int {
	kept := r.waitlist[:0]
	for _, w := range r.waitlist {
		if w.Pid != pid {
			kept = append(kept, w)
		}
	}
	removed := len(r.waitlist) - len(kept)
	r.waitlist = kept
	return removed
}

type resourceTable struct {
	classes []*rcb
}

func newResourceTable(inventories []int) *resourceTable {
	t := &resourceTable{classes: make([]*rcb, len(inventories))}
	t.reset(inventories)
	return t
}

// Refills every class and empties every waitlist.
func (t *resourceTable) reset(inventories []int) {
	for i, inv := range inventories {
		t.classes[i] = &rcb{inventory: inv, available: inv}
	}
}

func (t *resourceTable) get(rid domain.Rid) (*rcb, bool) {
	if rid < 0 || int(rid) >= len(t.classes) {
		return nil, false
	}
	return t.classes[rid], true
}
