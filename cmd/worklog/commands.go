package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/worklog"
	"github.com/spf13/cobra"
)

type parseFlags struct {
	ranges  bool
	maxSpan int
	json    bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.ranges, "ranges", false, "expand a-b chapter ranges")
	cmd.Flags().IntVar(&f.maxSpan, "max-span", worklog.DefaultMaxRangeSpan, "widest range to expand")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of a table")
}

func (f *parseFlags) options() []worklog.Option {
	return []worklog.Option{
		worklog.WithRangeExpansion(f.ranges),
		worklog.WithMaxRangeSpan(f.maxSpan),
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Tally chapters from typesetting work logs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newSummaryCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse one work log; reads stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			projects := worklog.Parse(raw, flags.options()...)
			total := worklog.Total(projects)

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					Projects      []worklog.Project `json:"projects"`
					TotalChapters int               `json:"total_chapters"`
				}{projects, total})
			}
			return writeProjects(cmd.OutOrStdout(), projects, total)
		},
	}
	flags.register(cmd)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "summary <file>...",
		Short: "Total several members' work logs; each file is one member",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members := make([]member.Member, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				projects := worklog.Parse(string(data), flags.options()...)
				members = append(members, member.Member{
					Name:          memberName(path),
					RawInput:      string(data),
					Projects:      projects,
					TotalChapters: worklog.Total(projects),
				})
			}

			sum := summary.Aggregate(members)
			if flags.json {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			return writeSummary(cmd.OutOrStdout(), sum)
		},
	}
	flags.register(cmd)
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// memberName is the file's base name without its extension.
func memberName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProjects(w io.Writer, projects []worklog.Project, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tCOUNT\tCHAPTERS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, p.Count, joinInts(p.Chapters))
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t\n", total)
	return tw.Flush()
}

func writeSummary(w io.Writer, sum summary.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tCOUNT\tCONTRIBUTORS")
	for _, p := range sum.Projects {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, p.TotalCount, strings.Join(p.Contributors, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d chapters across %d projects from %d active members\n",
		sum.TotalChapters, sum.TotalProjects, sum.ActiveMembers)
	return err
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
