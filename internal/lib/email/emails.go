package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	return c.SendEmail(
		to,
		"Welcome to StudyKit!",
		TemplateWelcome,
		map[string]string{"UserFirstName": firstName},
	)
}
