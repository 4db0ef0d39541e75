package footprint

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// TypeSize is the share of a footprint charged to one type.
type TypeSize struct {
	Total uint64 // bytes charged to values of the type itself, children excluded
	Count uint64 // values of the type accounted for
}

// Report is a footprint with its per type breakdown. Composites are counted
// but charge nothing themselves, their fields carry the cost.
type Report struct {
	Total  uint64
	ByType map[reflect.Type]*TypeSize
}

// Types returns the reported types ordered by descending total, then by name.
func (r *Report) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.ByType))
	for t := range r.ByType {
		types = append(types, t)
	}

	slices.SortFunc(types, func(a, b reflect.Type) int {
		if c := cmp.Compare(r.ByType[b].Total, r.ByType[a].Total); c != 0 {
			return c
		}
		return cmp.Compare(a.String(), b.String())
	})

	return types
}

// String renders the report as a table.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "total %s (%d bytes)\n", humanize.IBytes(r.Total), r.Total)
	for _, t := range r.Types() {
		ts := r.ByType[t]
		fmt.Fprintf(&b, "%10s %6d  %s\n", humanize.IBytes(ts.Total), ts.Count, t)
	}

	return b.String()
}
