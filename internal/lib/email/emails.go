package email

// WelcomeSubject is the subject line of the registration email.
const WelcomeSubject = "Welcome to the store!"

// SendWelcomeEmail greets a newly registered customer.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"CustomerFirstName": firstName,
		"CustomerEmail":     to,
	}

	return c.SendEmail(to, WelcomeSubject, TemplateWelcome, data)
}
