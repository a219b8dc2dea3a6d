// Package progress provides coarse visual feedback for long recursive
// operations. Reporting is purely observational: it never blocks the
// operation and its absence changes nothing about correctness.
package progress

// Func receives the current entry index and the total entry count during
// a recursive walk. A nil Func is valid and reports nothing.
type Func func(current, total int)

// stages are the five coarse indicators rendered at the 0/20/40/60/80%
// thresholds of a walk.
var stages = [5]string{
	"[-----]",
	"[>----]",
	"[>>---]",
	"[>>>--]",
	"[>>>>-]",
}

// Stage returns the indicator for the given position in a walk of total
// entries.
func Stage(current, total int) string {
	if total <= 0 {
		return stages[0]
	}
	unit := total / 5
	switch {
	case unit == 0:
		return stages[0]
	case current > unit*4:
		return stages[4]
	case current > unit*3:
		return stages[3]
	case current > unit*2:
		return stages[2]
	case current > unit:
		return stages[1]
	default:
		return stages[0]
	}
}

// Stages adapts a string renderer into a Func that emits the five-stage
// indicator. The renderer is only called when the indicator changes.
func Stages(render func(string)) Func {
	last := ""
	return func(current, total int) {
		s := Stage(current, total)
		if s != last {
			last = s
			render(s)
		}
	}
}

// Report invokes f if it is non-nil.
func (f Func) Report(current, total int) {
	if f != nil {
		f(current, total)
	}
}
