package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(marksCmd)
}

var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "Prints per-course internal marks.",
	Run: func(cmd *cobra.Command, args []string) {
		marks, err := service.Marks(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		// render the course title instead of the bare code when the
		// course listing is available
		titles := map[string]string{}
		courses, err := service.Courses(cmd.Context())
		if err != nil {
			slog.Warn("course listing unavailable, printing bare course codes", "err", err)
		}
		for _, course := range courses {
			titles[course.Code] = course.Title
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		header := table.Row{}
		for _, cell := range marks.Header {
			header = append(header, cell)
		}
		t.AppendHeader(header)

		for _, row := range marks.Rows {
			rendered := table.Row{}
			for i, cell := range row.Cells {
				if i == 0 {
					if title, ok := titles[cell]; ok {
						cell = title
					}
				}
				rendered = append(rendered, cell)
			}
			t.AppendRow(rendered)
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
