package utils

import (
	"fmt"
	"path"
	"strings"

	"carelink-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

var extensionsByContentType = map[string]string{
	constvars.MIMEApplicationPDF: ".pdf",
	constvars.MIMEImagePNG:       ".png",
	constvars.MIMEImageJPEG:      ".jpg",
}

// ExtensionForContentType returns the file extension for an accepted upload
// content type and false for anything else.
func ExtensionForContentType(contentType string) (string, bool) {
	ext, ok := extensionsByContentType[strings.ToLower(contentType)]
	return ext, ok
}

func GenerateDocumentObjectName(switchRequestID, ext string) string {
	return path.Join(constvars.MinioSwitchRequestObjectPrefix, switchRequestID, uuid.NewString()+ext)
}

func GenerateSignatureObjectName(switchRequestID, signatureID string) string {
	return path.Join(constvars.MinioSignatureObjectPrefix, switchRequestID, fmt.Sprintf("%s.png", signatureID))
}

func GenerateSessionKey(sessionID string) string {
	return constvars.RedisSessionKeyPrefix + sessionID
}

func GenerateConversationChannel(conversationID string) string {
	return constvars.RedisConversationChannelPrefix + conversationID
}
