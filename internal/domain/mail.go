package domain

type MailMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
