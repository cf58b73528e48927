package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Logs into the portal and saves the session.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal(err)
		}
		password = strings.TrimRight(password, "\r\n")

		err = service.Login(cmd.Context(), args[0], password)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Logged in.")
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drops the saved session and all cached data.",
	Run: func(cmd *cobra.Command, args []string) {
		err := service.Logout(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Logged out.")
	},
}
