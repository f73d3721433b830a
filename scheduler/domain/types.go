// Package domain provides the process, resource and priority definitions
// shared by the scheduler engine, the text driver and the CLI.
package domain

import (
	"fmt"
)

// Pid identifies a slot in the process table. Ids are stable handles:
// a live process keeps its id until it is destroyed or the engine is reset.
type Pid int

// Rid identifies a resource class.
type Rid int

const (
	// NoPid is returned alongside every rejected operation.
	// The text driver renders it as -1.
	NoPid Pid = -1

	// RootPid is the permanent root of the process forest.
	RootPid Pid = 0
)

type Priority int

const (
	// Lowest level, the root process lives here.
	P0 Priority = iota

	// Runs ahead of P0 processes.
	P1

	// Runs ahead of P0 and P1 processes.
	P2
)

// Number of priority levels and therefore of ready queues.
const NumPriorities = int(P2) + 1

func (p Priority) Valid() bool {
	return p >= P0 && p <= P2
}

func (p Priority) String() string {
	return fmt.Sprintf("P%d", int(p))
}

// ProcessState is a logical flag, a blocked process is not waiting on anything real.
type ProcessState int

const (
	// Eligible to run, present in exactly one ready queue.
	Ready ProcessState = iota

	// Waiting in exactly one resource waitlist.
	Blocked
)

func (s ProcessState) String() string {
	switch s {
	case Ready:
		return "READY"
	case Blocked:
		return "BLOCKED"
	}
	return fmt.Sprintf("ProcessState(%d)", int(s))
}

// Grant is one satisfied request held by a process. Grants of the same
// class are kept as separate entries and are released one at a time.
type Grant struct {
	Rid   Rid
	Units int
}

func (g Grant) String() string {
	return fmt.Sprintf("(%d,%d)", g.Rid, g.Units)
}

// WaitEntry is a pending request in a resource class waitlist.
type WaitEntry struct {
	Pid   Pid
	Units int
}

func (w WaitEntry) String() string {
	return fmt.Sprintf("(%d,%d)", w.Pid, w.Units)
}
