package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"TaskEval/Models"
)

// SendEmail sends an email using the provided configuration and message details
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail)
	headers["To"] = strings.Join(message.To, ", ")
	headers["Subject"] = message.Subject
	if message.IsHTML {
		headers["MIME-Version"] = "1.0"
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = "text/plain; charset=UTF-8"
	}

	var messageBody strings.Builder
	for key, value := range headers {
		messageBody.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	messageBody.WriteString("\r\n")
	messageBody.WriteString(message.Body)

	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	if config.TLSEnabled {
		return sendWithTLS(config, serverAddr, auth, message.To, messageBody.String())
	}
	return smtp.SendMail(serverAddr, auth, config.FromEmail, message.To, []byte(messageBody.String()))
}

func sendWithTLS(config Models.EmailConfig, serverAddr string, auth smtp.Auth, recipients []string, body string) error {
	tlsConfig := &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("error connecting to SMTP server: %v", err)
	}

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("error creating SMTP client: %v", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("error authenticating: %v", err)
	}
	if err := client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("error setting sender: %v", err)
	}
	for _, recipient := range recipients {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("error setting recipient: %v", err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("error opening data writer: %v", err)
	}
	if _, err := writer.Write([]byte(body)); err != nil {
		return fmt.Errorf("error writing message: %v", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error closing data writer: %v", err)
	}

	return client.Quit()
}

// SendPaymentReceipt mails a receipt for an unlock payment. When no SMTP
// server is configured the receipt is skipped without error.
func SendPaymentReceipt(user Models.User, payment *Models.Payment) error {
	config, ok := Models.LoadEmailConfig()
	if !ok {
		return nil
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %.2f (%s) for evaluation #%d.\nYour full report is now unlocked.\n\nSmart Task Evaluator",
		user.Name, payment.Amount, payment.PaymentMethod, payment.EvaluationID,
	)

	return SendEmail(config, Models.EmailMessage{
		To:      []string{user.Email},
		Subject: "Payment received - report unlocked",
		Body:    body,
	})
}
