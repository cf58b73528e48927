package studentdata

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"academia-backend/lib/schedule"
	"academia-backend/lib/timezone"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type NotifierConfig struct {
	Smtp SmtpConfig `json:"smtp"`
	To   string     `json:"to"`
	// LeadMinutes is how far before a class start the reminder fires.
	LeadMinutes int `json:"lead_minutes"`
}

// Notifier watches the schedule snapshot and mails a reminder shortly
// before the next class starts. At most one reminder goes out per slot
// per day.
type Notifier struct {
	config NotifierConfig
	holder *SnapshotHolder
	sent   map[string]bool

	// Now is injectable for tests.
	Now func() time.Time
	// Send is injectable for tests; the default delivers over smtp.
	Send func(result schedule.NextClassResult) error
}

func NewNotifier(config NotifierConfig, holder *SnapshotHolder) *Notifier {
	n := &Notifier{
		config: config,
		holder: holder,
		sent:   map[string]bool{},
		Now:    timezone.Now,
	}
	n.Send = n.sendMail
	return n
}

// Run checks once a minute until the context is canceled.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (n *Notifier) check(ctx context.Context) {
	snapshot, _, ok := n.holder.Get()
	if !ok {
		return
	}

	now := n.Now()
	result := schedule.FindNextClass(snapshot.Grid, snapshot.Mapping, snapshot.Months, now)
	if !result.Found || !result.IsToday {
		return
	}
	if result.MinutesUntil > int64(n.config.LeadMinutes) {
		return
	}

	key := fmt.Sprintf("%s/%s", now.Format("2006-01-02"), result.Slot)
	if n.sent[key] {
		return
	}

	err := n.Send(result)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send class reminder", "err", err)
		return
	}
	n.sent[key] = true
	slog.InfoContext(ctx, "sent class reminder",
		"course", result.Course.Code,
		"slot", result.Slot,
		"minutes_until", result.MinutesUntil,
	)
}

func (n *Notifier) sendMail(result schedule.NextClassResult) error {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Academia <%s>", n.config.Smtp.EmailAddress)
	mail.To = []string{n.config.To}
	mail.Subject = fmt.Sprintf("%s starts in %d minutes", result.Course.Title, result.MinutesUntil)

	body := fmt.Sprintf(`%s (%s) starts in %d minutes.

Slot: %s
Room: %s
Faculty: %s`,
		result.Course.Title, result.Course.Code, result.MinutesUntil,
		result.Slot, result.Course.Room, result.Course.Faculty,
	)
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", n.config.Smtp.Server, n.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", n.config.Smtp.EmailAddress, n.config.Smtp.Password, n.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}
