package mail

type FollowUpEmailData struct {
	Name        string
	ProductName string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
