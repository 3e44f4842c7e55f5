package brevo

// Contact identifies a sender or recipient
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// SendEmailRequest is the payload of POST /smtp/email
type SendEmailRequest struct {
	Sender      Contact   `json:"sender"`
	To          []Contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// SendEmailResponse is the success payload of POST /smtp/email
type SendEmailResponse struct {
	MessageID string `json:"messageId"`
}

// ErrorResponse is the error payload returned by the Brevo API
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
