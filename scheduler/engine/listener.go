package engine

//go:generate mockgen -source=listener.go -package=engine -destination=listener_mock.go

import (
	"github.com/twitter/procsched/scheduler/domain"
)

// Listener observes the transitions applied by an Engine.
// Events are delivered synchronously, in the order the transitions happen,
// before the operation returns.
type Listener interface {
	OnEvent(e domain.Event)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(e domain.Event)

func (f ListenerFunc) OnEvent(e domain.Event) {
	f(e)
}

type nopListener struct{}

func (nopListener) OnEvent(domain.Event) {}
