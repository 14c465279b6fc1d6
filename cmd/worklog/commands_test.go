package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/worklog"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCmd_StdinTable(t *testing.T) {
	out, err := execute(t, "Eleceed 137, 138\nJustAName\nTotal - 3", "parse")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "PROJECT"))
	require.Contains(t, lines[1], "Eleceed")
	require.Contains(t, lines[1], "137, 138")
	require.Contains(t, lines[2], "JustAName")
	require.Regexp(t, `^TOTAL\s+3`, lines[3])
}

func TestParseCmd_FileJSONWithRanges(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kai.txt", "Solo Leveling 100-102\n")

	out, err := execute(t, "", "parse", path, "--ranges", "--json")
	require.NoError(t, err)

	var got struct {
		Projects      []worklog.Project `json:"projects"`
		TotalChapters int               `json:"total_chapters"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 3, got.TotalChapters)
	require.Equal(t, []worklog.Project{{Name: "Solo Leveling", Chapters: []int{100, 101, 102}, Count: 3}}, got.Projects)
}

func TestParseCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestSummaryCmd(t *testing.T) {
	dir := t.TempDir()
	kai := writeFile(t, dir, "Kai.txt", "Eleceed 1, 2\nIRL Quest 5")
	rin := writeFile(t, dir, "Rin.log", "eleceed 3")

	out, err := execute(t, "", "summary", kai, rin, "--json")
	require.NoError(t, err)

	var sum summary.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	require.Equal(t, 4, sum.TotalChapters)
	require.Equal(t, 2, sum.ActiveMembers)
	require.Equal(t, "Eleceed", sum.Projects[0].Name)
	require.Equal(t, []string{"Kai", "Rin"}, sum.Projects[0].Contributors)

	out, err = execute(t, "", "summary", kai, rin)
	require.NoError(t, err)
	require.Contains(t, out, "4 chapters across 2 projects from 2 active members")
}

func TestSummaryCmd_RequiresFiles(t *testing.T) {
	_, err := execute(t, "", "summary")
	require.Error(t, err)
}

func TestMemberName(t *testing.T) {
	require.Equal(t, "Kai", memberName("/tmp/logs/Kai.txt"))
	require.Equal(t, "rin", memberName("rin"))
}
