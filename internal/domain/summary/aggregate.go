// Package summary reduces member work logs into a team total.
package summary

import (
	"sort"
	"strings"

	"github.com/ganot/typeset-board/internal/domain/member"
)

// Aggregate merges projects across members by case-insensitive name. The
// first spelling seen wins; projects are ordered by total count, highest
// first, with ties kept in first-seen order.
func Aggregate(members []member.Member) Summary {
	index := make(map[string]int)
	projects := []GlobalProject{}
	active := 0

	for _, m := range members {
		if m.TotalChapters > 0 {
			active++
		}
		for _, p := range m.Projects {
			key := strings.ToLower(p.Name)
			i, ok := index[key]
			if !ok {
				index[key] = len(projects)
				projects = append(projects, GlobalProject{
					Name:         p.Name,
					TotalCount:   p.Count,
					Contributors: []string{m.Name},
				})
				continue
			}
			projects[i].TotalCount += p.Count
			if !contains(projects[i].Contributors, m.Name) {
				projects[i].Contributors = append(projects[i].Contributors, m.Name)
			}
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].TotalCount > projects[j].TotalCount
	})

	total := 0
	for _, p := range projects {
		total += p.TotalCount
	}

	return Summary{
		Projects:      projects,
		TotalChapters: total,
		ActiveMembers: active,
		TotalProjects: len(projects),
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
