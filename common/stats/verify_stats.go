package stats

import (
	"bytes"
	"fmt"
	"testing"
)

/*
Utilities for validating the stats registry contents
*/

// Rule checks one rendered value; got is nil when the stat was never registered.
type Rule struct {
	name    string
	checker func(got interface{}) bool
}

// Int64Eq passes when the stat is a counter or gauge equal to want.
func Int64Eq(want int64) Rule {
	return Rule{
		name: fmt.Sprintf("== %d", want),
		checker: func(got interface{}) bool {
			v, ok := got.(int64)
			return ok && v == want
		},
	}
}

// DoesNotExist passes when nothing was registered under the key.
var DoesNotExist = Rule{name: "does not exist", checker: func(got interface{}) bool { return got == nil }}

/*
Verify that the receiver's registry contains values for the keys in contains and that
each value conforms to the rule associated with that key.
*/
func VerifyStats(tag string, stat StatsReceiver, t *testing.T, contains map[string]Rule) {
	s, ok := stat.(*defaultStatsReceiver)
	if !ok {
		t.Errorf("%s: cannot verify stats of %T", tag, stat)
		return
	}
	reg, ok := s.registry.(*finagleStatsRegistry)
	if !ok {
		t.Errorf("%s: cannot verify registry of %T", tag, s.registry)
		return
	}

	all := reg.MarshalAll()
	failed := false
	var msg bytes.Buffer
	msg.WriteString(tag)
	msg.WriteString(": stats registry error:\n")
	for key, rule := range contains {
		if got := all[key]; !rule.checker(got) {
			failed = true
			msg.WriteString(fmt.Sprintf("%s: got %v, expected %s\n", key, got, rule.name))
		}
	}
	if failed {
		pretty, _ := reg.MarshalJSONPretty()
		msg.Write(pretty)
		t.Error(msg.String())
	}
}
