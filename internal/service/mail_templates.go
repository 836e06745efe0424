package service

import "fmt"

func activationEmailBody(username, baseURL, token string) string {
	link := fmt.Sprintf("%s/api/auth/activate?token=%s", baseURL, token)
	return fmt.Sprintf(`Dear %s,

Thank you for registering on our website. To activate your account, please click on the following link:

%s

The link is valid for a limited time. If you did not register, you can safely ignore this email.

Best regards,
E-Learn LTD.
`, username, link)
}

func reminderEmailBody(username, baseURL string) string {
	return fmt.Sprintf(`Dear %s,

We noticed you have not studied for a few days. Your course is waiting for you:

%s

Keep your streak going - a few minutes a day makes a difference.

Best regards,
E-Learn LTD.
`, username, baseURL)
}
