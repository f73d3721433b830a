package engine

import (
	"testing"

	"github.com/golang/mock/gomock"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/procsched/common/stats"
	"github.com/twitter/procsched/scheduler/domain"
)

func Test_Listener_EventsInOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	l := NewMockListener(mockCtrl)

	gomock.InOrder(
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventReset, Pid: 0}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventCreated, Pid: 1, Parent: 0, Priority: domain.P1}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventScheduled, Pid: 1, From: 0}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventGranted, Pid: 1, Rid: 0, Units: 1}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventRotated, Pid: 1, Priority: domain.P1}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventReleased, Pid: 1, Rid: 0, Units: 1}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventDestroyed, Pid: 1, Parent: 0, Priority: domain.P1, State: domain.Ready}),
		l.EXPECT().OnEvent(domain.Event{Type: domain.EventScheduled, Pid: 0, From: 1}),
	)

	e := newTestEngine(t, l)
	e.Create(1)
	e.Request(0, 1)
	e.Timeout()
	e.Destroy(1)
}

func Test_Listener_RejectionEvent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	l := NewMockListener(mockCtrl)

	var got domain.Event
	l.EXPECT().OnEvent(gomock.Any()).Times(1)
	e := newTestEngine(t, l)

	l.EXPECT().OnEvent(gomock.Any()).Do(func(ev domain.Event) { got = ev }).Times(1)
	_, err := e.Create(7)
	require.Error(t, err)
	assert.Equal(t, domain.EventRejected, got.Type)
	require.NotNil(t, got.Err)
	assert.Equal(t, domain.OpCreate, got.Err.Op)
	assert.Equal(t, domain.ArgumentOutOfRange, got.Err.Kind)
}

func Test_Listener_NoEventsForNoSwitch(t *testing.T) {
	rec := &EventRecorder{}
	e := newTestEngine(t, rec)
	rec.Reset()

	// the root rotating onto itself is not a context switch
	e.Timeout()
	assert.Equal(t, []domain.EventType{domain.EventRotated}, rec.Types())
}

func Test_Listener_UnblockOrder(t *testing.T) {
	rec := &EventRecorder{}
	e := newTestEngine(t, rec)
	e.Create(1)
	e.Request(3, 3)
	e.Create(2)
	e.Request(3, 2)
	rec.Reset()

	e.Release(3, 3)
	assert.Equal(t, []domain.EventType{
		domain.EventReleased,
		domain.EventUnblocked,
		domain.EventScheduled,
	}, rec.Types())
}

func Test_Listener_Multi(t *testing.T) {
	a, b := &EventRecorder{}, &EventRecorder{}
	e := newTestEngine(t, MultiListener(a, nil, b))
	e.Create(2)
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, []domain.EventType{domain.EventReset, domain.EventCreated, domain.EventScheduled}, a.Types())
}

func Test_Listener_Stats(t *testing.T) {
	stat := stats.DefaultStatsReceiver()
	e := newTestEngine(t, NewStatsListener(stat))

	e.Create(1)     // 1
	e.Request(3, 3) // granted
	e.Create(2)     // 2
	e.Request(3, 1) // 2 blocks
	e.Create(9)     // rejected
	e.Release(3, 3) // 2 unblocks and runs

	stats.VerifyStats("after release", stat, t, map[string]stats.Rule{
		stats.EngineResetCounter:                             stats.Int64Eq(1),
		stats.EngineCreatedCounter:                           stats.Int64Eq(2),
		stats.EngineGrantedCounter:                           stats.Int64Eq(2),
		stats.EngineBlockedCounter:                           stats.Int64Eq(1),
		stats.EngineUnblockedCounter:                         stats.Int64Eq(1),
		stats.EngineReleasedCounter:                          stats.Int64Eq(1),
		stats.EngineContextSwitchCounter:                     stats.Int64Eq(4),
		stats.EngineRejectedCounter:                          stats.Int64Eq(1),
		stats.EngineRejectedCounter + "/ArgumentOutOfRange":  stats.Int64Eq(1),
		stats.EngineRejectedCounter + "/StructuralViolation": stats.DoesNotExist,
		stats.EngineLiveProcessesGauge:                       stats.Int64Eq(3),
		stats.EngineBlockedProcessesGauge:                    stats.Int64Eq(0),
		stats.EngineRunningPidGauge:                          stats.Int64Eq(2),
		stats.EngineDestroyedCounter:                         stats.DoesNotExist,
		stats.EngineRotatedCounter:                           stats.DoesNotExist,
	})

	e.Request(0, 1)
	e.Request(0, 1) // 2 blocks again, 1 runs
	e.Destroy(2)

	stats.VerifyStats("after destroy", stat, t, map[string]stats.Rule{
		stats.EngineDestroyedCounter:      stats.Int64Eq(1),
		stats.EngineLiveProcessesGauge:    stats.Int64Eq(2),
		stats.EngineBlockedProcessesGauge: stats.Int64Eq(0),
		stats.EngineRunningPidGauge:       stats.Int64Eq(1),
	})

	e.Init()
	stats.VerifyStats("after init", stat, t, map[string]stats.Rule{
		stats.EngineResetCounter:       stats.Int64Eq(2),
		stats.EngineLiveProcessesGauge: stats.Int64Eq(1),
		stats.EngineRunningPidGauge:    stats.Int64Eq(0),
	})
}

func Test_Listener_Logging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	e := newTestEngine(t, NewLoggingListener(logger))

	e.Create(1)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, "scheduled pid=1 from=0", entry.Message)
	assert.Equal(t, "scheduled", entry.Data["event"])

	e.Release(2, 1)
	entry = hook.LastEntry()
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "release", entry.Data["op"])
	assert.Equal(t, "ResourceNotHeld", entry.Data["kind"])

	// only rejections above debug
	hook.Reset()
	logger.SetLevel(log.InfoLevel)
	e.Create(2)
	e.Timeout()
	assert.Empty(t, hook.AllEntries())
}
