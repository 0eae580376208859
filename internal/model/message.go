package model

// InboxMessage is a mailbox message reduced to the fields the scan needs.
// SenderEmail is always lowercased; Snippet is already bounded in length.
type InboxMessage struct {
	ID          string `json:"id"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Subject     string `json:"subject"`
	Snippet     string `json:"snippet"`
}
