package contact

// ContactRequest represents a contact form submission.
// Field limits mirror the form inputs: name 100, email 512, subject 200, message 4096.
type ContactRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email,max=512"`
	Subject        string `json:"subject" binding:"omitempty,max=200"`
	Message        string `json:"message" binding:"required,max=4096"`
	TurnstileToken string `json:"turnstileToken"`
}

// SuccessResponse is the body returned after a successful relay
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body returned for any failed relay attempt.
// Details carries the raw upstream result when an external call failed.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
