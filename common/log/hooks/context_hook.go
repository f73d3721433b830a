package hooks

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Frames deeper than this are never the caller of a log function.
const maxDepth = 32

type contextHook struct {
}

// NewContextHook adds a "file:line" field naming the code that logged the entry.
func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isLoggingFrame(frame.Function) {
			entry.Data["file:line"] = fmt.Sprintf("%s:%d", trimPath(frame.File), frame.Line)
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isLoggingFrame(function string) bool {
	return strings.Contains(function, "github.com/sirupsen/logrus") ||
		strings.Contains(function, "hooks.contextHook.")
}

// Paths are reported relative to the module root.
func trimPath(file string) string {
	ctx := strings.Split(file, "procsched/")
	return ctx[len(ctx)-1]
}
