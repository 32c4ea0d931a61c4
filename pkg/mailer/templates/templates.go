package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names known to the email worker.
const (
	PasswordResetOTP = "password_reset_otp"
)

var otpHTML = template.Must(template.New(PasswordResetOTP).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password reset code</h2>
  <p>Hi {{.Username}},</p>
  <p>Use the code below to reset your password. It expires in {{.ExpiresIn}}.</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.OTP}}</p>
  <p>If you did not request a reset, you can ignore this email.</p>
</body>
</html>`))

// Render builds subject, text and HTML bodies for a known template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case PasswordResetOTP:
		var buf bytes.Buffer
		if err = otpHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Your password reset code"
		text = fmt.Sprintf("Your password reset code is %v. It expires in %v.", data["OTP"], data["ExpiresIn"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
