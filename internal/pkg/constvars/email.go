package constvars

const (
	EmailNotificationSubjectFormat = "[CareLink] %s"
	EmailNotificationHTMLFormat    = `<p>Hi %s,</p><p>%s</p><p><a href="%s">Open in CareLink</a></p>`
)
