package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(targetCmd)
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Prints per-course attendance with the margin against the target percentage.",
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := service.AttendanceSummary(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Code", "Title", "Conducted", "Absent", "%", "Can skip", "Must attend",
		})
		for _, entry := range summary {
			title := entry.Attendance.CourseTitle
			if entry.Linked && entry.Course.Room != "" {
				title = fmt.Sprintf("%s (%s)", title, entry.Course.Room)
			}
			t.AppendRow(table.Row{
				entry.Attendance.CourseCode,
				title,
				entry.Attendance.ClassesConducted,
				entry.Attendance.ClassesAbsent,
				fmt.Sprintf("%.2f", entry.Percentage),
				entry.ClassesMargin,
				entry.ClassesNeeded,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var targetCmd = &cobra.Command{
	Use:   "target [percent]",
	Short: "Prints or sets the attendance target percentage.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			var target int
			_, err := fmt.Sscanf(args[0], "%d", &target)
			if err != nil {
				log.Fatal(err)
			}
			err = service.SetTargetPercent(cmd.Context(), target)
			if err != nil {
				log.Fatal(err)
			}
		}

		target, err := service.TargetPercent(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Target: %d%%\n", target)
	},
}
