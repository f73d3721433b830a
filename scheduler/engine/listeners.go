package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/twitter/procsched/common/stats"
	"github.com/twitter/procsched/scheduler/domain"
)

// MultiListener delivers every event to each listener in order.
func MultiListener(listeners ...Listener) Listener {
	return ListenerFunc(func(e domain.Event) {
		for _, l := range listeners {
			if l != nil {
				l.OnEvent(e)
			}
		}
	})
}

// EventRecorder keeps every event it receives.
type EventRecorder struct {
	Events []domain.Event
}

func (r *EventRecorder) OnEvent(e domain.Event) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types, in order.
func (r *EventRecorder) Types() []domain.EventType {
	types := make([]domain.EventType, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}

func (r *EventRecorder) Reset() {
	r.Events = nil
}

// NewLoggingListener logs transitions at debug level and rejections at info level.
func NewLoggingListener(logger log.FieldLogger) Listener {
	return ListenerFunc(func(e domain.Event) {
		fields := log.Fields{"event": e.Type.String()}
		switch e.Type {
		case domain.EventRejected:
			if e.Err != nil {
				fields["op"] = string(e.Err.Op)
				fields["kind"] = e.Err.Kind.String()
			}
			logger.WithFields(fields).Info(e.Err)
			return
		case domain.EventReset:
		case domain.EventScheduled:
			fields["pid"] = e.Pid
			fields["from"] = e.From
		default:
			fields["pid"] = e.Pid
		}
		logger.WithFields(fields).Debug(e.String())
	})
}

// statsListener turns events into counters and gauges.
type statsListener struct {
	stat    stats.StatsReceiver
	live    int64
	blocked int64
}

// NewStatsListener records every event in stat. The gauges it maintains assume
// it sees every event of one engine from its construction on.
func NewStatsListener(stat stats.StatsReceiver) Listener {
	return &statsListener{stat: stat}
}

func (s *statsListener) OnEvent(e domain.Event) {
	switch e.Type {
	case domain.EventReset:
		s.live, s.blocked = 1, 0
		s.stat.Counter(stats.EngineResetCounter).Inc(1)
		s.stat.Gauge(stats.EngineRunningPidGauge).Update(int64(domain.RootPid))
	case domain.EventCreated:
		s.live++
		s.stat.Counter(stats.EngineCreatedCounter).Inc(1)
	case domain.EventDestroyed:
		s.live--
		if e.State == domain.Blocked {
			s.blocked--
		}
		s.stat.Counter(stats.EngineDestroyedCounter).Inc(1)
	case domain.EventGranted:
		s.stat.Counter(stats.EngineGrantedCounter).Inc(1)
	case domain.EventBlocked:
		s.blocked++
		s.stat.Counter(stats.EngineBlockedCounter).Inc(1)
	case domain.EventUnblocked:
		s.blocked--
		s.stat.Counter(stats.EngineUnblockedCounter).Inc(1)
		s.stat.Counter(stats.EngineGrantedCounter).Inc(1)
	case domain.EventReleased:
		s.stat.Counter(stats.EngineReleasedCounter).Inc(1)
	case domain.EventRotated:
		s.stat.Counter(stats.EngineRotatedCounter).Inc(1)
	case domain.EventScheduled:
		s.stat.Counter(stats.EngineContextSwitchCounter).Inc(1)
		s.stat.Gauge(stats.EngineRunningPidGauge).Update(int64(e.Pid))
	case domain.EventRejected:
		s.stat.Counter(stats.EngineRejectedCounter).Inc(1)
		if e.Err != nil {
			s.stat.Scope(stats.EngineRejectedCounter).Counter(e.Err.Kind.String()).Inc(1)
		}
	}
	s.stat.Gauge(stats.EngineLiveProcessesGauge).Update(s.live)
	s.stat.Gauge(stats.EngineBlockedProcessesGauge).Update(s.blocked)
}
