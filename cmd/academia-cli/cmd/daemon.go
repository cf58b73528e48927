package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"academia-backend/lib/serviceutil"
	"academia-backend/lib/telemetry"
	"academia-backend/services/studentdata"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Runs the class reminder daemon.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := serviceutil.SignalContext()

		t, err := telemetry.SetupFromEnv(ctx, "academia-daemon")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("setup telemetry", err)
		}
		if err == nil {
			defer t.Shutdown(context.Background())
		}
		telemetry.InstrumentPerfStats(ctx)

		notifier := studentdata.NewNotifier(config.Notifier, service.Holder())
		go notifier.Run(ctx)
		go refreshSchedule(ctx)

		slog.InfoContext(ctx, "reminder daemon started",
			"lead_minutes", config.Notifier.LeadMinutes)
		<-ctx.Done()
	},
}

// refreshSchedule keeps the snapshot the notifier reads current; the
// scrape itself is rate limited by the artifact cache.
func refreshSchedule(ctx context.Context) {
	refresh := func() {
		_, err := service.NextClass(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to refresh schedule snapshot", "err", err)
		}
	}
	refresh()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			refresh()
		case <-ctx.Done():
			return
		}
	}
}
