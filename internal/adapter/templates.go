package adapter

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

var emailTemplates = map[string]emailTemplate{
	TemplatePasswordReset: {
		subject: "Reset your password",
		body: template.Must(template.New(TemplatePasswordReset).Parse(
			`<p>Hi {{.Name}},</p>` +
				`<p>We received a request to reset your dashboard password. ` +
				`<a href="{{.Link}}">Choose a new password</a>. The link expires in {{.ExpiresIn}}.</p>` +
				`<p>If you did not ask for this, you can ignore this email.</p>`)),
	},
	TemplateVerifyEmail: {
		subject: "Verify your email address",
		body: template.Must(template.New(TemplateVerifyEmail).Parse(
			`<p>Hi {{.Name}},</p>` +
				`<p>Please <a href="{{.Link}}">confirm your email address</a> to finish setting up your account. ` +
				`The link expires in {{.ExpiresIn}}.</p>`)),
	},
}

// renderEmail returns the subject and HTML body for subjectKey.
func renderEmail(subjectKey string, data EmailData) (string, string, error) {
	tmpl, ok := emailTemplates[subjectKey]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, subjectKey)
	}

	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render %q: %w", subjectKey, err)
	}

	return tmpl.subject, body.String(), nil
}
