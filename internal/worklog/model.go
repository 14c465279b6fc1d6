package worklog

// Project is one series recovered from a work log with its merged chapters.
type Project struct {
	Name     string `json:"name"`
	Chapters []int  `json:"chapters"`
	Count    int    `json:"count"`
}

// Total returns the amount of work logged across projects.
func Total(projects []Project) int {
	total := 0
	for _, p := range projects {
		total += p.Count
	}
	return total
}
