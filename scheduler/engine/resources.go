package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/twitter/procsched/scheduler/domain"
)

// restore hands units of rid back from pid and serves the waitlist.
// The caller has already dropped the grant from pid's record.
func (e *Engine) restore(pid domain.Pid, rid domain.Rid, units int) {
	rc, ok := e.resources.get(rid)
	if !ok {
		log.Panicf("process %d holds units of unknown resource %d", pid, rid)
	}
	rc.available += units
	if rc.available > rc.inventory {
		log.Panicf("resource %d has %d units available, more than its inventory %d", rid, rc.available, rc.inventory)
	}
	e.emit(domain.Event{Type: domain.EventReleased, Pid: pid, Rid: rid, Units: units})
	e.serveWaitlist(rid, rc)
}

// serveWaitlist grants, in arrival order, every waiting request that fits in the
// available units. Requests too large for now keep their place in line while
// later, smaller ones are served.
func (e *Engine) serveWaitlist(rid domain.Rid, rc *rcb) {
	i := 0
	for i < len(rc.waitlist) && rc.available > 0 {
		w := rc.waitlist[i]
		if w.Units > rc.available {
			i++
			continue
		}
		rc.available -= w.Units
		rc.waitlist = append(rc.waitlist[:i], rc.waitlist[i+1:]...)

		p := e.mustProcess(w.Pid)
		if p.state != domain.Blocked {
			log.Panicf("waitlisted process %d of resource %d is %s", w.Pid, rid, p.state)
		}
		p.resources = append(p.resources, domain.Grant{Rid: rid, Units: w.Units})
		p.state = domain.Ready
		e.ready.push(p.priority, w.Pid)
		e.emit(domain.Event{Type: domain.EventUnblocked, Pid: w.Pid, Rid: rid, Units: w.Units})
	}
}
