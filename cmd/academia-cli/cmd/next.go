package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var exportDays int
var exportOut string

func init() {
	rootCmd.AddCommand(nextCmd)

	exportCmd.Flags().IntVar(&exportDays, "days", 7, "How many days ahead to export.")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout.")
	rootCmd.AddCommand(exportCmd)
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Prints the next scheduled class.",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := service.NextClass(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		if !result.Found {
			fmt.Println("No upcoming classes.")
			return
		}

		when := "tomorrow"
		if result.IsToday {
			when = fmt.Sprintf("in %d minutes", result.MinutesUntil)
		}
		fmt.Printf("%s (%s) %s, slot %s",
			result.Course.Title, result.Course.Code, when, result.Slot)
		if result.Course.Room != "" {
			fmt.Printf(", room %s", result.Course.Room)
		}
		fmt.Println()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the upcoming schedule as an iCalendar document.",
	Run: func(cmd *cobra.Command, args []string) {
		serialized, err := service.ExportICS(cmd.Context(), exportDays)
		if err != nil {
			log.Fatal(err)
		}

		if exportOut == "" {
			fmt.Print(serialized)
			return
		}
		err = os.WriteFile(exportOut, []byte(serialized), 0644)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s.\n", exportOut)
	},
}
