package utils

import (
	"encoding/base64"
	"fmt"

	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
)

func BuildNotificationEmailPayload(fromEmail, toEmail, recipientName, title, body, link string) *requests.EmailPayload {
	htmlCode := fmt.Sprintf(constvars.EmailNotificationHTMLFormat, recipientName, body, link)
	encoded := base64.StdEncoding.EncodeToString([]byte(htmlCode))

	return &requests.EmailPayload{
		Subject:  fmt.Sprintf(constvars.EmailNotificationSubjectFormat, title),
		From:     fromEmail,
		To:       []string{toEmail},
		Cc:       []string{},
		Bcc:      []string{},
		HTMLCode: encoded,
		Encoded:  true,
	}
}
