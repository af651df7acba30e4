package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

// Service handles email composition and sending.
type Service struct {
	sender      Sender
	fromAddress string
	fromName    string
	templates   map[string]*template.Template
}

// NewService creates a new email service. Each content template is parsed
// together with the shared layout.
func NewService(sender Sender, fromAddress, fromName string) (*Service, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{
		OrderConfirmationEmail{}.TemplateName(),
		WelcomeEmail{}.TemplateName(),
	} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Service{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
		templates:   templates,
	}, nil
}

// SendOrderConfirmation sends an order confirmation email.
func (s *Service) SendOrderConfirmation(ctx context.Context, data OrderConfirmationEmail) error {
	return s.send(ctx, data.Email, data)
}

// SendWelcome sends an account welcome email.
func (s *Service) SendWelcome(ctx context.Context, data WelcomeEmail) error {
	return s.send(ctx, data.Email, data)
}

func (s *Service) send(ctx context.Context, to string, data Template) error {
	name := data.TemplateName()
	if to == "" {
		return ErrNoRecipients
	}

	htmlBody, textBody, err := s.renderTemplate(name, data)
	if err != nil {
		s.recordFailure(name)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	email := &Email{
		To:       []string{to},
		From:     s.from(),
		Subject:  data.Subject(),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	if _, err := s.sender.Send(ctx, email); err != nil {
		s.recordFailure(name)
		return fmt.Errorf("failed to send %s: %w", name, err)
	}

	if telemetry.Business != nil {
		telemetry.Business.EmailSent.WithLabelValues(templateLabel(name)).Inc()
	}
	return nil
}

func (s *Service) from() string {
	if s.fromName == "" {
		return s.fromAddress
	}
	return fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
}

func (s *Service) recordFailure(name string) {
	if telemetry.Business != nil {
		telemetry.Business.EmailFailed.WithLabelValues(templateLabel(name)).Inc()
	}
}

func templateLabel(name string) string {
	return strings.TrimSuffix(name, ".html")
}

// renderTemplate executes the layout for a content template and derives a
// plain text alternative.
func (s *Service) renderTemplate(templateName string, data Template) (string, string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", "", ErrTemplateNotFound(templateName)
	}

	var htmlBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBuf, "email_layout", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	htmlBody := htmlBuf.String()
	return htmlBody, generatePlainText(htmlBody), nil
}

// generatePlainText creates a simple plain text version from HTML
func generatePlainText(html string) string {
	text := html

	for _, tag := range []string{"<br>", "<br/>", "<br />", "</div>", "</tr>"} {
		text = strings.ReplaceAll(text, tag, "\n")
	}
	for _, tag := range []string{"</p>", "</h1>", "</h2>", "</h3>"} {
		text = strings.ReplaceAll(text, tag, "\n\n")
	}
	text = strings.ReplaceAll(text, "</td>", " ")

	for strings.Contains(text, "<") && strings.Contains(text, ">") {
		start := strings.Index(text, "<")
		end := strings.Index(text, ">")
		if start >= 0 && end > start {
			text = text[:start] + text[end+1:]
		} else {
			break
		}
	}

	text = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#34;", "\"",
		"&#39;", "'",
	).Replace(text)

	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
