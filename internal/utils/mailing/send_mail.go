package mailing

import (
	"strconv"

	"ComiYA-Backend/internal/utils"

	"gopkg.in/gomail.v2"
)

func SendMail(toEmail string, subject string, body string) error {
	smtpPort, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", utils.GetConfig("SMTP_SENDER_NAME"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		utils.GetConfig("SMTP_HOST"),
		smtpPort,
		utils.GetConfig("SMTP_AUTH_EMAIL"),
		utils.GetConfig("SMTP_AUTH_PASSWORD"),
	)

	return dialer.DialAndSend(mailer)
}
