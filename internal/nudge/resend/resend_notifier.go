package resend

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

const defaultFrom = "onboarding@resend.dev"

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>{{len .Habits}} habit streak{{if gt (len .Habits) 1}}s are{{else}} is{{end}} expiring within the next {{.Hours}} hours:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
<p>Log them today to keep the streak alive.</p>
`))

// Render builds the email subject and HTML body.
func Render(habits []string, hoursTillExpiry int) (subject, html string, err error) {
	data := struct {
		Habits []string
		Hours  int
	}{
		Habits: habits,
		Hours:  hoursTillExpiry,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%d streak(s) expiring soon", len(habits)), buf.String(), nil
}

func (r *ResendNotifier) SendNudge(habits []string, hoursTillExpiry int) error {
	if r.ApiKey == "" || r.Email == "" {
		return errors.New("resend notifier needs an API key and a recipient email")
	}
	subject, html, err := Render(habits, hoursTillExpiry)
	if err != nil {
		return err
	}

	from := r.From
	if from == "" {
		from = defaultFrom
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: subject,
		Html:    html,
	}

	_, err = client.Emails.Send(params)
	return err
}
