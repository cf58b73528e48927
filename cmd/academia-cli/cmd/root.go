package cmd

import (
	"fmt"
	"os"

	"academia-backend/lib/configutil"
	"academia-backend/lib/scrapers/academia"
	"academia-backend/lib/telemetry"
	"academia-backend/services/studentdata"
	"academia-backend/services/studentdata/store"

	"github.com/spf13/cobra"
)

var BaseUrl = academia.BaseUrl

type Config struct {
	// Db is a sqlite path or a libsql:// url.
	Db       string                     `json:"db"`
	Notifier studentdata.NotifierConfig `json:"notifier"`
}

var config Config
var service *studentdata.Service
var verbose bool

var rootCmd = &cobra.Command{
	Use:               "academia-cli",
	Short:             "academia-cli scrapes the SRM Academia portal from the command line.",
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

func setup(command *cobra.Command, args []string) error {
	telemetry.InitSlog(verbose)

	cfg, err := configutil.ReadRecursively[Config]("academia.json5")
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read config: %w", err)
	}
	config = cfg
	if config.Db == "" {
		config.Db = "academia.db"
	}

	database, err := store.Open(config.Db)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	client, err := academia.NewClient(BaseUrl)
	if err != nil {
		return fmt.Errorf("create portal client: %w", err)
	}
	service = studentdata.NewService(store.New(database), client, client)
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
