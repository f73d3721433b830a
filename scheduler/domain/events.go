package domain

import (
	"fmt"
)

// EventType tags a state transition applied by the engine.
type EventType int

const (
	// Engine returned to the canonical state.
	EventReset EventType = iota

	// Process created as a child of the running process.
	EventCreated

	// Process removed from the table, as part of a subtree destroy.
	EventDestroyed

	// Units granted, either immediately or from a waitlist.
	EventGranted

	// Running process moved from its ready queue to a waitlist.
	EventBlocked

	// Waitlisted process received its units and became ready again.
	EventUnblocked

	// Units returned to a class, by release or by destroy.
	EventReleased

	// Running process moved to the tail of its ready queue.
	EventRotated

	// Selection picked a different running process.
	EventScheduled

	// Operation failed validation, nothing changed.
	EventRejected
)

func (t EventType) String() string {
	asString := [...]string{"reset", "created", "destroyed", "granted", "blocked",
		"unblocked", "released", "rotated", "scheduled", "rejected"}
	if t < 0 || int(t) >= len(asString) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return asString[t]
}

// Event describes one transition. Only the fields relevant to Type are set:
//
//	Created:   Pid, Parent, Priority
//	Destroyed: Pid, Parent, Priority, State (the state it was destroyed in)
//	Granted, Blocked, Unblocked, Released: Pid, Rid, Units
//	Rotated:   Pid, Priority
//	Scheduled: Pid (new running), From (previous running)
//	Rejected:  Err
type Event struct {
	Type     EventType
	Pid      Pid
	Parent   Pid
	From     Pid
	Priority Priority
	State    ProcessState
	Rid      Rid
	Units    int
	Err      *Error
}

func (e Event) String() string {
	switch e.Type {
	case EventReset:
		return "reset"
	case EventCreated:
		return fmt.Sprintf("created pid=%d parent=%d priority=%s", e.Pid, e.Parent, e.Priority)
	case EventDestroyed:
		return fmt.Sprintf("destroyed pid=%d parent=%d state=%s", e.Pid, e.Parent, e.State)
	case EventGranted, EventBlocked, EventUnblocked, EventReleased:
		return fmt.Sprintf("%s pid=%d rid=%d units=%d", e.Type, e.Pid, e.Rid, e.Units)
	case EventRotated:
		return fmt.Sprintf("rotated pid=%d priority=%s", e.Pid, e.Priority)
	case EventScheduled:
		return fmt.Sprintf("scheduled pid=%d from=%d", e.Pid, e.From)
	case EventRejected:
		return fmt.Sprintf("rejected %v", e.Err)
	}
	return e.Type.String()
}
