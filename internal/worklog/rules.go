package worklog

import (
	"regexp"
	"strings"
)

var (
	totalLinePattern = regexp.MustCompile(`(?i)^total\s*[-–—:]`)
	dashPattern      = regexp.MustCompile(`^(.+?)\s*[-–—]\s*(.*)$`)
	trailingPattern  = regexp.MustCompile(`^(.+?)\s+([\d,\s/\-]+)$`)
)

// split is the outcome of a grammar rule: a candidate project name and the
// raw number field that followed it, if any.
type split struct {
	name     string
	field    string
	hasField bool
}

// rule recognises one line shape. Rules are tried in order and the first
// match wins.
type rule struct {
	name  string
	match func(line string) (split, bool)
}

var (
	dashRule = rule{
		name: "dash",
		match: func(line string) (split, bool) {
			m := dashPattern.FindStringSubmatch(line)
			if m == nil {
				return split{}, false
			}
			return split{name: strings.TrimSpace(m[1]), field: m[2], hasField: true}, true
		},
	}

	trailingRule = rule{
		name: "trailing",
		match: func(line string) (split, bool) {
			m := trailingPattern.FindStringSubmatch(line)
			if m == nil {
				return split{}, false
			}
			return split{name: strings.TrimSpace(m[1]), field: m[2], hasField: true}, true
		},
	}

	fallbackRule = rule{
		name: "fallback",
		match: func(line string) (split, bool) {
			return split{name: line}, true
		},
	}
)

// grammar returns the rules in priority order. Range expansion treats a
// hyphen inside the trailing numbers as a range operator, so the trailing
// rule has to see the line before the dash rule claims the hyphen.
func grammar(o options) []rule {
	if o.rangeExpansion {
		return []rule{trailingRule, dashRule, fallbackRule}
	}
	return []rule{dashRule, trailingRule, fallbackRule}
}

func isTotalLine(line string) bool {
	return totalLinePattern.MatchString(line)
}

func splitLine(line string, rules []rule) split {
	for _, r := range rules {
		if s, ok := r.match(line); ok {
			return s
		}
	}
	return split{name: line}
}
