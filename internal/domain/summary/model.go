package summary

// GlobalProject is one project totalled across the whole team.
type GlobalProject struct {
	Name         string   `json:"name"`
	TotalCount   int      `json:"total_count"`
	Contributors []string `json:"contributors"`
}

// Summary is the team-wide view of every member's work log.
type Summary struct {
	Projects      []GlobalProject `json:"projects"`
	TotalChapters int             `json:"total_chapters"`
	ActiveMembers int             `json:"active_members"`
	TotalProjects int             `json:"total_projects"`
}
