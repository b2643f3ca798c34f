package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"frontline-citizen-be/internal/entity"
)

type IEmailService interface {
	SendCaseAlert(toEmail string, record *entity.CaseRecord) error
	SendDailySummary(toEmail, summary string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

// SendCaseAlert mails the operations inbox about a single case. Used for
// critical-urgency cases only; the caller decides the threshold.
func (s *emailService) SendCaseAlert(toEmail string, record *entity.CaseRecord) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Case %s requires attention", record.Urgency, record.CaseId))

	target := "not resolved"
	if record.Target != nil {
		target = record.Target.Name
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Case %s</h2>
			<p><b>Type:</b> %s</p>
			<p><b>Urgency:</b> %s</p>
			<p><b>Facility:</b> %s</p>
			<p><b>Report:</b> %s</p>
		</div>
	`, record.CaseId, record.CaseType, record.Urgency, target, record.UserMessage)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send case alert for %s: %v\n", record.CaseId, err)
		return err
	}
	fmt.Printf("[MAILER] Case alert for %s sent to %s\n", record.CaseId, toEmail)
	return nil
}

func (s *emailService) SendDailySummary(toEmail, summary string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Daily case intake summary")
	m.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Daily Summary</h2>
			<pre style="white-space: pre-wrap;">%s</pre>
		</div>
	`, summary))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send daily summary to %s: %v\n", toEmail, err)
		return err
	}
	fmt.Printf("[MAILER] Daily summary sent to %s\n", toEmail)
	return nil
}
