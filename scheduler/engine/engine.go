package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/twitter/procsched/scheduler/domain"
)

// Engine owns the process table, the resource classes and the ready queues.
// An Engine is not safe for concurrent use, it is driven one operation at a time
// by its owner.
type Engine struct {
	config    Config
	procs     *processTable
	resources *resourceTable
	ready     readyQueues
	running   domain.Pid
	listener  Listener
}

// NewEngine builds an engine in the canonical reset state.
// A nil listener discards events.
func NewEngine(config Config, listener Listener) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if listener == nil {
		listener = nopListener{}
	}
	config.Inventories = append([]int(nil), config.Inventories...)
	e := &Engine{
		config:    config,
		procs:     newProcessTable(config.MaxProcesses),
		resources: newResourceTable(config.Inventories),
		listener:  listener,
	}
	e.Init()
	return e, nil
}

// NewDefaultEngine builds an engine with DefaultConfig.
func NewDefaultEngine(listener Listener) *Engine {
	e, err := NewEngine(DefaultConfig(), listener)
	if err != nil {
		log.Panicf("default engine config is invalid: %v", err)
	}
	return e
}

// Config returns the settings the engine was built with.
func (e *Engine) Config() Config {
	c := e.config
	c.Inventories = append([]int(nil), c.Inventories...)
	return c
}

// Running returns the pid selected by the last operation.
func (e *Engine) Running() domain.Pid {
	return e.running
}

// Init resets the engine to the canonical state: only the root process exists,
// every resource class is full and the root is the sole ready process.
func (e *Engine) Init() domain.Pid {
	e.procs.reset()
	e.resources.reset(e.config.Inventories)
	e.ready.reset()
	e.running = domain.RootPid
	e.emit(domain.Event{Type: domain.EventReset, Pid: domain.RootPid})
	e.verify(domain.OpInit)
	return e.running
}

// Create adds a ready child of the running process at the given priority.
func (e *Engine) Create(priority domain.Priority) (domain.Pid, error) {
	if !priority.Valid() {
		return e.reject(domain.NewError(domain.OpCreate, domain.ArgumentOutOfRange,
			"priority %d not in [%d, %d]", int(priority), domain.P0, domain.P2))
	}
	parentPid := e.running
	parent := e.mustProcess(parentPid)
	pid, ok := e.procs.alloc(newPCB(priority, parentPid))
	if !ok {
		return e.reject(domain.NewError(domain.OpCreate, domain.ResourceExhausted,
			"process table full, all %d slots in use", e.procs.capacity()))
	}
	parent.children = append(parent.children, pid)
	e.ready.push(priority, pid)
	e.emit(domain.Event{Type: domain.EventCreated, Pid: pid, Parent: parentPid, Priority: priority})
	return e.schedule(domain.OpCreate), nil
}

// Destroy removes pid and every process below it, releasing everything they hold.
// pid must be the running process or one of its descendants.
func (e *Engine) Destroy(pid domain.Pid) (domain.Pid, error) {
	if !e.procs.inRange(pid) {
		return e.reject(domain.NewError(domain.OpDestroy, domain.ArgumentOutOfRange,
			"pid %d not in [0, %d)", pid, e.procs.capacity()))
	}
	if pid == domain.RootPid {
		return e.reject(domain.NewError(domain.OpDestroy, domain.StructuralViolation,
			"the root process cannot be destroyed"))
	}
	if _, ok := e.procs.get(pid); !ok {
		return e.reject(domain.NewError(domain.OpDestroy, domain.StructuralViolation,
			"process %d does not exist", pid))
	}
	if !e.isDescendant(pid, e.running) {
		return e.reject(domain.NewError(domain.OpDestroy, domain.StructuralViolation,
			"process %d is not process %d or one of its descendants", pid, e.running))
	}

	for _, victim := range e.subtree(pid) {
		e.removeProcess(victim)
	}
	return e.schedule(domain.OpDestroy), nil
}

// Request asks for units of rid on behalf of the running process.
// If the units are not available now the running process blocks.
func (e *Engine) Request(rid domain.Rid, units int) (domain.Pid, error) {
	rc, ok := e.resources.get(rid)
	if !ok {
		return e.reject(domain.NewError(domain.OpRequest, domain.ArgumentOutOfRange,
			"rid %d not in [0, %d)", rid, len(e.resources.classes)))
	}
	if units < 1 {
		return e.reject(domain.NewError(domain.OpRequest, domain.ArgumentOutOfRange,
			"units %d, must be >= 1", units))
	}
	if e.running == domain.RootPid {
		return e.reject(domain.NewError(domain.OpRequest, domain.StructuralViolation,
			"the root process cannot request resources"))
	}
	if units > rc.inventory {
		return e.reject(domain.NewError(domain.OpRequest, domain.PermanentInfeasibility,
			"%d units of resource %d requested, only %d exist", units, rid, rc.inventory))
	}

	pid := e.running
	p := e.mustProcess(pid)
	if rc.available >= units {
		rc.available -= units
		p.resources = append(p.resources, domain.Grant{Rid: rid, Units: units})
		e.emit(domain.Event{Type: domain.EventGranted, Pid: pid, Rid: rid, Units: units})
	} else {
		p.state = domain.Blocked
		if !e.ready.remove(p.priority, pid) {
			log.Panicf("running process %d missing from ready queue %s", pid, p.priority)
		}
		rc.waitlist = append(rc.waitlist, domain.WaitEntry{Pid: pid, Units: units})
		e.emit(domain.Event{Type: domain.EventBlocked, Pid: pid, Rid: rid, Units: units})
	}
	return e.schedule(domain.OpRequest), nil
}

// Release returns one grant of exactly (rid, units) held by the running process,
// then serves the waitlist of rid.
func (e *Engine) Release(rid domain.Rid, units int) (domain.Pid, error) {
	if _, ok := e.resources.get(rid); !ok {
		return e.reject(domain.NewError(domain.OpRelease, domain.ArgumentOutOfRange,
			"rid %d not in [0, %d)", rid, len(e.resources.classes)))
	}
	if units < 1 {
		return e.reject(domain.NewError(domain.OpRelease, domain.ArgumentOutOfRange,
			"units %d, must be >= 1", units))
	}
	p := e.mustProcess(e.running)
	i := p.findGrant(rid, units)
	if i < 0 {
		return e.reject(domain.NewError(domain.OpRelease, domain.ResourceNotHeld,
			"process %d holds no grant of %d units of resource %d", e.running, units, rid))
	}

	p.removeGrant(i)
	e.restore(e.running, rid, units)
	return e.schedule(domain.OpRelease), nil
}

// Timeout moves the running process to the tail of its ready queue.
func (e *Engine) Timeout() domain.Pid {
	pid := e.running
	p := e.mustProcess(pid)
	if head, ok := e.ready.head(p.priority); !ok || head != pid {
		log.Panicf("running process %d is not the head of ready queue %s: %v", pid, p.priority, e.ready[p.priority])
	}
	e.ready.rotate(p.priority)
	e.emit(domain.Event{Type: domain.EventRotated, Pid: pid, Priority: p.priority})
	return e.schedule(domain.OpTimeout)
}

// schedule selects the running process: the head of the highest priority non-empty queue.
func (e *Engine) schedule(op domain.Op) domain.Pid {
	pid, ok := e.ready.highest()
	if !ok {
		log.Panicf("%s: no ready process, the root process is missing from every ready queue", op)
	}
	if pid != e.running {
		prev := e.running
		e.running = pid
		e.emit(domain.Event{Type: domain.EventScheduled, Pid: pid, From: prev})
	}
	e.verify(op)
	return pid
}

func (e *Engine) reject(err *domain.Error) (domain.Pid, error) {
	e.emit(domain.Event{Type: domain.EventRejected, Err: err})
	return domain.NoPid, err
}

func (e *Engine) emit(ev domain.Event) {
	e.listener.OnEvent(ev)
}

// Panics if DebugMode is set and op left the engine inconsistent.
func (e *Engine) verify(op domain.Op) {
	if !e.config.DebugMode {
		return
	}
	if err := e.CheckInvariants(); err != nil {
		log.Panicf("%s left the engine inconsistent: %v\n%s", op, err, e.Dump())
	}
}

// mustProcess returns the record of a pid the engine expects to be alive.
func (e *Engine) mustProcess(pid domain.Pid) *pcb {
	p, ok := e.procs.get(pid)
	if !ok {
		log.Panicf("process %d expected to exist", pid)
	}
	return p
}
