package email

import (
	"html/template"
	"strings"
)

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0;">
  <h2 style="color: #1e293b;">Reset Your Password</h2>
  <p style="color: #475569; font-size: 16px;">Hi {{.Name}},</p>
  <p style="color: #475569; font-size: 16px;">We received a request to reset your password. Click the button below to choose a new one. This link will expire in 1 hour.</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.ResetURL}}" style="background-color: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: 500; display: inline-block;">Reset Password</a>
  </div>
  <p style="color: #94a3b8; font-size: 14px;">If you didn't request this, you can safely ignore this email.</p>
</div>
`))

func renderResetEmail(name, resetURL string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	var sb strings.Builder
	err := resetTemplate.Execute(&sb, struct {
		Name     string
		ResetURL string
	}{Name: name, ResetURL: resetURL})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
