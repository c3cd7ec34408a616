// Package notify delivers task failure and completion messages to email,
// slack, telegram and webhook destinations via go-pkgz/notify.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// Notifier is a subset of go-pkgz/notify interface with a single sender
type Notifier interface {
	Send(ctx context.Context, destination, text string) error
	Schema() string
	fmt.Stringer
}

// Service delivers notifications to all configured destinations
type Service struct {
	Params
	senders   []Notifier
	fromEmail string
	toEmails  []string
	slackChan []string
	tgChan    []string
	webhooks  []string
	timeNow   func() time.Time
}

// Params which are not senders-specific
type Params struct {
	EnabledError       bool
	EnabledCompletion  bool
	ErrorTemplate      string // file name of error template
	CompletionTemplate string // file name of completion template
	HostName           string
}

// SendersParams contains params for all supported senders
type SendersParams struct {
	FromEmail    string
	ToEmails     []string
	SMTPHost     string
	SMTPPort     int
	SMTPTLS      bool
	SMTPStartTLS bool
	SMTPUsername string
	SMTPPassword string
	SMTPTimeOut  time.Duration

	SlackToken    string
	SlackChannels []string

	TelegramToken        string
	TelegramDestinations []string

	WebhookURLs    []string
	WebhookTimeOut time.Duration
	WebhookHeaders []string
}

const defaultErrorTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
<p>Task {{.Task}} failed on {{.Host}} at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}</p>
<pre>{{.Error}}</pre>
</body>
</html>`

const defaultCompletionTemplate = `<!DOCTYPE html>
<html lang="en">
<body>
<p>Task {{.Task}} completed on {{.Host}} at {{.TS.Format "2006-01-02T15:04:05Z07:00"}}</p>
</body>
</html>`

// NewService makes notification service with the list of senders enabled by SendersParams.
// Returns nil if no senders configured.
func NewService(p Params, sp SendersParams) *Service {
	res := Service{
		Params:    p,
		fromEmail: sp.FromEmail,
		toEmails:  sp.ToEmails,
		slackChan: sp.SlackChannels,
		tgChan:    sp.TelegramDestinations,
		webhooks:  sp.WebhookURLs,
		timeNow:   time.Now,
	}

	if len(sp.ToEmails) > 0 {
		res.senders = append(res.senders, notify.NewEmail(notify.SMTPParams{
			Host:        sp.SMTPHost,
			Port:        sp.SMTPPort,
			TLS:         sp.SMTPTLS,
			StartTLS:    sp.SMTPStartTLS,
			Username:    sp.SMTPUsername,
			Password:    sp.SMTPPassword,
			TimeOut:     sp.SMTPTimeOut,
			ContentType: "text/html",
		}))
	}

	if sp.SlackToken != "" && len(sp.SlackChannels) > 0 {
		res.senders = append(res.senders, notify.NewSlack(sp.SlackToken))
	}

	if sp.TelegramToken != "" && len(sp.TelegramDestinations) > 0 {
		tg, err := notify.NewTelegram(notify.TelegramParams{Token: sp.TelegramToken, Timeout: time.Second * 10})
		if err != nil {
			log.Printf("[WARN] failed to make telegram sender, %v", err)
		} else {
			res.senders = append(res.senders, tg)
		}
	}

	if len(sp.WebhookURLs) > 0 {
		res.senders = append(res.senders, notify.NewWebhook(notify.WebhookParams{
			Timeout: sp.WebhookTimeOut,
			Headers: sp.WebhookHeaders,
		}))
	}

	if len(res.senders) == 0 {
		return nil
	}
	return &res
}

// Send message to all senders, each sender gets destinations matching its schema
func (s *Service) Send(ctx context.Context, subj, text string) error {
	if s == nil {
		return nil
	}

	var errs []error
	for _, sender := range s.senders {
		for _, dest := range s.destinations(sender.Schema(), subj) {
			log.Printf("[DEBUG] send notification via %s to %s", sender, dest)
			if err := sender.Send(ctx, dest, text); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// destinations builds destination strings for a given schema
func (s *Service) destinations(schema, subj string) []string {
	switch schema {
	case "mailto":
		if len(s.toEmails) == 0 {
			return nil
		}
		dest := "mailto:" + strings.Join(s.toEmails, ",") + "?from=" + s.fromEmail +
			"&subject=" + url.QueryEscape(subj)
		return []string{dest}
	case "slack":
		res := make([]string, 0, len(s.slackChan))
		for _, ch := range s.slackChan {
			res = append(res, "slack:"+ch+"?title="+url.QueryEscape(subj))
		}
		return res
	case "telegram":
		res := make([]string, 0, len(s.tgChan))
		for _, ch := range s.tgChan {
			res = append(res, "telegram:"+ch)
		}
		return res
	case "http", "https":
		return s.webhooks
	}
	return nil
}

// IsOnError status enabling notification on errors
func (s *Service) IsOnError() bool { return s != nil && s.EnabledError }

// IsOnCompletion status enabling notification on completion
func (s *Service) IsOnCompletion() bool { return s != nil && s.EnabledCompletion }

// MakeErrorHTML creates error html body from either default or user-defined template
func (s *Service) MakeErrorHTML(task, errorLog string) (string, error) {
	return s.render(s.ErrorTemplate, defaultErrorTemplate, task, errorLog)
}

// MakeCompletionHTML creates completion html body from either default or user-defined template
func (s *Service) MakeCompletionHTML(task string) (string, error) {
	return s.render(s.CompletionTemplate, defaultCompletionTemplate, task, "")
}

func (s *Service) render(file, def, task, errorLog string) (string, error) {
	data := struct {
		Task  string
		TS    time.Time
		Error string
		Host  string
	}{
		Task:  task,
		TS:    s.timeNow(),
		Error: errorLog,
		Host:  s.HostName,
	}
	if data.Host == "" {
		if h, err := os.Hostname(); err == nil {
			data.Host = h
		}
	}

	text := def
	if file != "" {
		b, err := os.ReadFile(file) // nolint:gosec // file name from user config
		if err != nil {
			log.Printf("[WARN] can't open template file %s, %v", file, err)
		} else {
			text = string(b)
		}
	}

	t, err := template.New("message").Parse(text)
	if err != nil {
		return "", fmt.Errorf("can't parse template: %w", err)
	}
	buf := bytes.Buffer{}
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("can't execute template: %w", err)
	}
	return buf.String(), nil
}
