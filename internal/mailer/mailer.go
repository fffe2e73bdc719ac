// Package mailer sends best-effort email notifications over SMTP.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/neezar-abd/nzardev/internal/models"
)

// Config carries the SMTP connection settings. The mailer is disabled
// when any field is empty.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

func (c Config) enabled() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != "" && c.From != "" && c.To != ""
}

// Mailer notifies the site owner about new guestbook entries. Sends run
// in the background and never block or fail the caller.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config, logger *slog.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger, send: smtp.SendMail}
	if !m.Enabled() {
		logger.Info("mailer disabled, smtp settings incomplete")
	}
	return m
}

// Enabled reports whether the SMTP settings are complete.
func (m *Mailer) Enabled() bool { return m.cfg.enabled() }

// NotifyEntry emails the owner about a new guestbook entry.
func (m *Mailer) NotifyEntry(entry models.GuestbookEntry) {
	subject := fmt.Sprintf("New guestbook entry from %s", entry.Username)
	body := fmt.Sprintf("%s wrote:\r\n\r\n%s\r\n\r\nat %s\r\n",
		entry.Username, entry.Text, entry.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
	m.sendAsync(subject, body)
}

func (m *Mailer) sendAsync(subject, body string) {
	if !m.Enabled() {
		return
	}
	go func() {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		addr := m.cfg.Host + ":" + m.cfg.Port
		msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s",
			m.cfg.To, m.cfg.From, subject, body))

		if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.To}, msg); err != nil {
			m.logger.Warn("mail send failed", slog.String("subject", subject), slog.String("error", err.Error()))
			return
		}
		m.logger.Info("mail sent", slog.String("subject", subject))
	}()
}
