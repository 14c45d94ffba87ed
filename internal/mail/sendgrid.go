package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers verification codes through the SendGrid v3 API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	sandbox   bool
}

// NewSendGridMailer builds a mailer for the given API key and sender
// identity. Sandbox mode validates the request with SendGrid without
// actually delivering; useful in staging.
func NewSendGridMailer(apiKey, fromName, fromEmail string, sandbox bool) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		sandbox:   sandbox,
	}
}

// SendVerificationCode mails the code with its validity window. Any
// transport or API error is wrapped and returned; the caller decides how
// to surface it.
func (m *SendGridMailer) SendVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail("", email)
	subject := m.fromName + " - Your Verification Code"
	minutes := int(ttl.Minutes())
	plain := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes)
	html := fmt.Sprintf(verificationEmailHTML, minutes, code, time.Now().Year())

	msg := sgmail.NewSingleEmail(from, subject, to, plain, html)
	if m.sandbox {
		ms := sgmail.NewMailSettings()
		ms.SetSandboxMode(sgmail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// verificationEmailHTML is the branded code template. Placeholders:
// expiry minutes, the code, the copyright year.
const verificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Your Verification Code</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1f6f43; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: center; }
  .code { font-size: 36px; font-weight: bold; letter-spacing: 8px; color: #1f6f43; background-color: #f1f3f5; padding: 15px 20px; border-radius: 5px; display: inline-block; margin: 20px 0; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your Verification Code</h1>
    </div>
    <div class="content">
      <p>Use the code below to continue. It expires in %d minutes.</p>
      <div class="code">%s</div>
      <p>If you did not request this code, you can safely ignore this email.</p>
    </div>
    <div class="footer">
      &copy; %d Pestward. All rights reserved.
    </div>
  </div>
</body>
</html>`
