package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Report is the ordered textual summary of a labeling pass.
//
// Records are kept in the order they were supplied: discovery order for
// Result.Report, size order for a sorted report.
type Report struct {
	pixels *orderedmap.OrderedMap[int, int]
}

// NewReport builds a report from component records, preserving their order.
func NewReport(comps []Component) *Report {
	m := orderedmap.NewOrderedMap[int, int]()
	for _, c := range comps {
		m.Set(c.ID, c.Pixels)
	}
	return &Report{pixels: m}
}

// Lines returns one line per component followed by the total line.
func (r *Report) Lines() []string {
	lines := make([]string, 0, r.pixels.Len()+1)
	for el := r.pixels.Front(); el != nil; el = el.Next() {
		lines = append(lines, fmt.Sprintf("Connected Component %d, number of pixels = %d", el.Key, el.Value))
	}
	lines = append(lines, fmt.Sprintf("Total number of connected components = %d", r.pixels.Len()))
	return lines
}

// String joins Lines with newlines. The total line is not newline-terminated.
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// WriteTo writes the report to w in the same form as String.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
