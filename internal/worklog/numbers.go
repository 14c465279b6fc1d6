package worklog

import (
	"strconv"
	"strings"
	"unicode"
)

func isFieldSeparator(r rune) bool {
	return r == ',' || r == '/' || unicode.IsSpace(r)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// chapterNumbers tokenizes a number field into chapter numbers. Unusable
// tokens are dropped silently.
func chapterNumbers(field string, o options) []int {
	var numbers []int
	for _, token := range strings.FieldsFunc(field, isFieldSeparator) {
		if isDigits(token) {
			if n, err := strconv.Atoi(token); err == nil {
				numbers = append(numbers, n)
			}
			continue
		}
		if o.rangeExpansion {
			numbers = append(numbers, expandRange(token, o.maxRangeSpan)...)
		}
	}
	return numbers
}

// expandRange reads "a-b" as a..b inclusive. A reversed range or a dangling
// "a-" keeps only its leading number.
func expandRange(token string, maxSpan int) []int {
	startText, endText, ok := strings.Cut(token, "-")
	if !ok || !isDigits(startText) {
		return nil
	}
	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil
	}
	if endText == "" {
		return []int{start}
	}
	if !isDigits(endText) {
		return nil
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return nil
	}
	if start > end {
		return []int{start}
	}
	if end-start >= maxSpan {
		return nil
	}

	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}
