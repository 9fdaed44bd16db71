package resend

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>{{len .Habits}} habit streak{{if gt (len .Habits) 1}}s{{end}} will break in under {{.Hours}} hour{{if ne .Hours 1}}s{{end}}:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
<p>Mark them done before midnight to keep the streak alive.</p>
`))

// Render builds the HTML body for a nudge.
func Render(habits []string, hoursTillExpiry int) (string, error) {
	data := struct {
		Habits []string
		Hours  int
	}{
		Habits: habits,
		Hours:  hoursTillExpiry,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(habits []string, hoursTillExpiry int) error {
	if r.ApiKey == "" || r.Email == "" {
		return fmt.Errorf("resend notifier needs an API key and a recipient")
	}
	html, err := Render(habits, hoursTillExpiry)
	if err != nil {
		return err
	}

	from := r.From
	if from == "" {
		from = "onboarding@resend.dev"
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: "Streaks are expiring soon",
		Html:    html,
	}

	_, err = client.Emails.Send(params)
	return err
}
