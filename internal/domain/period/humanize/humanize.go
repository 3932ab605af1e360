// Package humanize renders structured time differences as short English
// phrases such as "2 days and 3 hours".
package humanize

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxParts is the number of units Interval keeps, counting from the largest
// non-zero one.
const MaxParts = 2

// Part is one component of a difference. Unit is the singular English name;
// the plural adds an "s".
type Part struct {
	Value int64
	Unit  string
}

func (p Part) String() string {
	if p.Value == 1 || p.Value == -1 {
		return humanize.Comma(p.Value) + " " + p.Unit
	}
	return humanize.Comma(p.Value) + " " + p.Unit + "s"
}

// Interval renders the largest non-zero part and, when present, the next
// non-zero part after it. Parts must be ordered largest unit first. When every
// part is zero the smallest unit is rendered with a zero count.
//
//	Interval([]Part{{0, "hour"}, {90, "minute"}})            // "90 minutes"
//	Interval([]Part{{1, "hour"}, {30, "minute"}, {5, "second"}}) // "1 hour and 30 minutes"
func Interval(parts []Part) string {
	if len(parts) == 0 {
		return ""
	}

	selected := make([]string, 0, MaxParts)
	for _, p := range parts {
		if p.Value == 0 {
			continue
		}
		selected = append(selected, p.String())
		if len(selected) == MaxParts {
			break
		}
	}

	if len(selected) == 0 {
		return Part{Unit: parts[len(parts)-1].Unit}.String()
	}
	return strings.Join(selected, " and ")
}
