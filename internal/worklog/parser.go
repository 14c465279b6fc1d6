// Package worklog turns free-text work logs into per-project chapter sets.
//
// A log is one member's paste, one project per line:
//
//	Eleceed 137, 138, 139
//	IRL Quest 50
//	ME - 506 / 522 / 517
//	Total - 12
//
// Parse never fails. Lines it cannot read as "name + numbers" count as a
// bare mention of the whole line; blank lines and "Total" subtotals are
// ignored.
package worklog

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Parse reads raw and returns its projects sorted by name.
func Parse(raw string, opts ...Option) []Project {
	o := newOptions(opts)
	rules := grammar(o)

	acc := newAccumulator()
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isTotalLine(line) {
			continue
		}

		s := splitLine(line, rules)
		if s.name == "" {
			continue
		}

		var numbers []int
		if s.hasField {
			numbers = chapterNumbers(s.field, o)
		}
		acc = acc.fold(s.name, numbers)
	}

	return acc.sorted()
}

// accumulator collects projects in first-seen order keyed by lower-cased name.
type accumulator struct {
	index    map[string]int
	projects []Project
}

func newAccumulator() accumulator {
	return accumulator{index: make(map[string]int)}
}

func (a accumulator) fold(name string, numbers []int) accumulator {
	key := strings.ToLower(name)
	i, exists := a.index[key]

	if len(numbers) > 0 {
		if exists {
			merged := mergeChapters(a.projects[i].Chapters, numbers)
			a.projects[i].Chapters = merged
			a.projects[i].Count = len(merged)
			return a
		}
		chapters := mergeChapters(nil, numbers)
		a.index[key] = len(a.projects)
		a.projects = append(a.projects, Project{Name: name, Chapters: chapters, Count: len(chapters)})
		return a
	}

	if exists {
		// Chapters already carry the count for this project.
		if len(a.projects[i].Chapters) == 0 {
			a.projects[i].Count++
		}
		return a
	}
	a.index[key] = len(a.projects)
	a.projects = append(a.projects, Project{Name: name, Chapters: []int{}, Count: 1})
	return a
}

func (a accumulator) sorted() []Project {
	out := make([]Project, len(a.projects))
	copy(out, a.projects)

	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := c.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func mergeChapters(existing, numbers []int) []int {
	merged := make([]int, 0, len(existing)+len(numbers))
	merged = append(merged, existing...)
	merged = append(merged, numbers...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
