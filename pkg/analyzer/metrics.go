package analyzer

import (
	"strconv"
	"strings"
)

// tableBorder is the box-drawing character used by the automation's summary
// tables. Metric values often arrive wrapped in it ("│ 120 │").
const tableBorder = "│"

// lastIntToken returns the last whitespace-delimited token on the line that
// parses as an integer, scanning right to left. Tokens are stripped of table
// border characters first; empty and non-integer tokens are skipped. The
// boolean is false when the line carries no integer token at all.
func lastIntToken(line string) (int, bool) {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		token := strings.Trim(fields[i], tableBorder)
		if token == "" {
			continue
		}
		v, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
