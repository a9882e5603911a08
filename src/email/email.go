// Package email sends transactional mail through the Brevo API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const apiURL = "https://api.brevo.com/v3/smtp/email"

type Client struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

func NewClient(apiKey, fromEmail, fromName string) *Client {
	return &Client{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sendRequest struct {
	Sender      recipient   `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// SendEmail delivers one message. When no API key is configured it is a
// no-op returning false rather than an error, so email stays optional.
func (c *Client) SendEmail(ctx context.Context, toEmail, toName, subject, htmlContent string) bool {
	if c.apiKey == "" {
		log.Printf("WARN: Brevo API key not configured, email not sent")
		return false
	}
	if toName == "" {
		toName = toEmail
	}

	payload := sendRequest{
		Sender:      recipient{Email: c.fromEmail, Name: c.fromName},
		To:          []recipient{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode email payload: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("ERROR: Failed to build email request: %v", err)
		return false
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("ERROR: Error sending email: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("ERROR: Failed to send email: %d - %s", resp.StatusCode, detail)
		return false
	}

	log.Printf("INFO: Email sent successfully to %s", toEmail)
	return true
}

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, toEmail, userName string) bool {
	subject := "¡Bienvenido a Glass Finance!"
	html := fmt.Sprintf(welcomeTemplate, userName)
	return c.SendEmail(ctx, toEmail, userName, subject, html)
}

// SendAlertEmail notifies a user about a generated alert.
func (c *Client) SendAlertEmail(ctx context.Context, toEmail, userName, alertTitle, alertMessage string) bool {
	subject := fmt.Sprintf("Alerta: %s", alertTitle)
	html := fmt.Sprintf(alertTemplate, userName, alertTitle, alertMessage)
	return c.SendEmail(ctx, toEmail, userName, subject, html)
}

const welcomeTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #005792;">¡Hola %s!</h1>
    <p>Bienvenido a Glass Finance, tu secretaria financiera personal.</p>
    <p>Con Glass Finance podrás conectar tus cuentas bancarias, rastrear tus
    transacciones, detectar cargos sospechosos y gestionar tus suscripciones.</p>
    <p style="margin-top: 30px; font-size: 12px; color: #666;">
      Si no creaste esta cuenta, por favor ignora este email.
    </p>
  </div>
</body>
</html>`

const alertTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #005792;">Hola %s,</h1>
    <h2>%s</h2>
    <p>%s</p>
    <p style="margin-top: 30px; font-size: 12px; color: #666;">
      Revisa la aplicación para más detalles.
    </p>
  </div>
</body>
</html>`
