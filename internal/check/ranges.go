package check

import (
	"strconv"
	"strings"
)

// FormatRanges writes row numbers in bracketed range notation. Runs of more
// than two consecutive numbers collapse to "first - last", everything else
// is listed with commas. The rows are not sorted, runs are found in the
// order given.
//
//	[1 2 3 4 7 9 10 11] => [1 - 4, 7, 9 - 11]
//	[5 6]               => [5, 6]
func FormatRanges(rows []int) string {
	var b strings.Builder
	b.WriteByte('[')

	for i := 0; i < len(rows); {
		j := i
		for j+1 < len(rows) && rows[j+1] == rows[j]+1 {
			j++
		}

		if i > 0 {
			b.WriteString(", ")
		}
		if j-i >= 2 {
			b.WriteString(strconv.Itoa(rows[i]))
			b.WriteString(" - ")
			b.WriteString(strconv.Itoa(rows[j]))
		} else {
			for k := i; k <= j; k++ {
				if k > i {
					b.WriteString(", ")
				}
				b.WriteString(strconv.Itoa(rows[k]))
			}
		}
		i = j + 1
	}

	b.WriteByte(']')
	return b.String()
}
