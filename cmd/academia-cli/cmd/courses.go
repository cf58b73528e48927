package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(profileCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Prints the enrolled course listing.",
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := service.Courses(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Code", "Title", "Credits", "Faculty", "Slots", "Room"})
		for _, course := range courses {
			t.AppendRow(table.Row{
				course.Code,
				course.Title,
				course.Credits,
				course.Faculty,
				strings.Join(course.Slots, ", "),
				course.Room,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Prints the student profile.",
	Run: func(cmd *cobra.Command, args []string) {
		info, err := service.StudentInfo(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRow(table.Row{"Registration Number", info.RegistrationNumber})
		t.AppendRow(table.Row{"Name", info.Name})
		t.AppendRow(table.Row{"Department", info.Department})
		t.AppendRow(table.Row{"Specialization", info.Specialization})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
