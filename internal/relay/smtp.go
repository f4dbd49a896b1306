package relay

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"github.com/cvvishnuu/portfolio/internal/contact"
)

// SMTPSettings holds the mail server credentials.
type SMTPSettings struct {
	Host string
	Port string
	User string
	Pass string
	// To receives owner notifications.
	To string
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends contact messages straight through a mail server. It renders its
// own subject and body per message kind; the template id is ignored.
type SMTP struct {
	settings SMTPSettings
	sendMail SendMailFunc
}

// NewSMTP creates an SMTP relay. sendMail may be nil to use smtp.SendMail.
func NewSMTP(settings SMTPSettings, sendMail SendMailFunc) *SMTP {
	if sendMail == nil {
		sendMail = smtp.SendMail
	}
	return &SMTP{settings: settings, sendMail: sendMail}
}

type mailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var mailTemplates = map[contact.MessageKind]mailTemplate{
	contact.KindNotify: {
		subject: template.Must(template.New("subject").Parse(`Portfolio Contact: {{.name}}`)),
		body: template.Must(template.New("body").Parse(`
New contact form submission from your portfolio:

Name: {{.name}}
Message:
{{.message}}

---
Sent from your portfolio contact form
`)),
	},
	contact.KindAutoReply: {
		subject: template.Must(template.New("subject").Parse(`Thanks for reaching out, {{.name}}`)),
		body: template.Must(template.New("body").Parse(`
Hi {{.name}},

Thanks for your message! I've received it and will get back to you soon.
`)),
	},
}

// Send implements contact.Relay.
func (s *SMTP) Send(_ context.Context, msg contact.Message) error {
	tmpl, ok := mailTemplates[msg.Kind]
	if !ok {
		return fmt.Errorf("smtp relay: unknown message kind %q", msg.Kind)
	}

	to := s.settings.To
	if msg.Kind == contact.KindAutoReply {
		to = msg.Params["to_email"]
	}
	if to == "" {
		return fmt.Errorf("smtp relay: no recipient for %s", msg.Kind)
	}

	raw, err := s.compose(tmpl, to, msg.Params)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.settings.User, s.settings.Pass, s.settings.Host)
	addr := s.settings.Host + ":" + s.settings.Port
	if err := s.sendMail(addr, auth, s.settings.User, []string{to}, raw); err != nil {
		return fmt.Errorf("smtp relay: %w", err)
	}
	return nil
}

func (s *SMTP) compose(tmpl mailTemplate, to string, params map[string]string) ([]byte, error) {
	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, params); err != nil {
		return nil, fmt.Errorf("rendering subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, params); err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", headerValue(to))
	fmt.Fprintf(&msg, "Subject: %s\r\n", headerValue(subject.String()))
	fmt.Fprintf(&msg, "From: %s\r\n", headerValue(s.settings.User))
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	msg.WriteString("\r\n")
	return msg.Bytes(), nil
}

// headerValue drops line breaks so user input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
