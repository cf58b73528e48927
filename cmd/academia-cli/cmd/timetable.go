package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(timetableCmd)
	rootCmd.AddCommand(calendarCmd)
}

var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Prints the day-order timetable grid.",
	Run: func(cmd *cobra.Command, args []string) {
		grid, err := service.Timetable(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		courses, err := service.Courses(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		mapping := make(map[string]string, len(courses))
		for _, course := range courses {
			for _, slot := range course.Slots {
				mapping[slot] = course.Title
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Day", "Time", "Slot", "Course"})
		for _, row := range grid {
			for _, slot := range row.Slots {
				if !slot.Occupied {
					continue
				}
				t.AppendRow(table.Row{
					fmt.Sprintf("Day %d", row.DayOrder),
					slot.Time,
					slot.Slot,
					mapping[slot.Slot],
				})
			}
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Prints the academic planner for the current term.",
	Run: func(cmd *cobra.Command, args []string) {
		months, err := service.Calendar(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Month", "Date", "Day", "Event", "Day Order"})
		for _, month := range months {
			for _, day := range month.Days {
				t.AppendRow(table.Row{
					month.Label, day.Date, day.Weekday, day.Event, day.DayOrder,
				})
			}
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
