package shared

// MailSettings is the configuration snapshot exposed on the admin
// test-email endpoint. Values report presence only, never secrets.
type MailSettings struct {
	SMTPServer   bool `json:"smtp_server"`
	SMTPPort     bool `json:"smtp_port"`
	SMTPUsername bool `json:"smtp_username"`
	SMTPPassword bool `json:"smtp_password"`
	FromEmail    bool `json:"from_email"`
	AdminEmail   bool `json:"admin_email"`
}

// Complete reports whether every required SMTP setting is present.
func (m MailSettings) Complete() bool {
	return m.SMTPServer && m.SMTPPort && m.SMTPUsername && m.SMTPPassword && m.FromEmail && m.AdminEmail
}
