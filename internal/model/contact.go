package model

import (
	"time"
)

const (
	SourceGmailScan   = "gmail_scan"
	SourceWebsiteForm = "website_form"

	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"

	ClassificationGeneralInterest = "general_interest"
)

// Contact is one row of the contact list. Email is the natural key,
// unique case-insensitively across the whole store.
type Contact struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	Source           string `json:"source"`
	AddedAt          string `json:"added_at"`
	Classification   string `json:"classification"`
	Status           string `json:"status"`
	UnsubscribeToken string `json:"unsubscribe_token"`
	Reason           string `json:"reason"`

	// Row is the backend row handle assigned by the store on load,
	// never persisted as a column.
	Row int `json:"-"`
}

func NewContact(email, name, source, classification, reason, unsubscribeToken string) *Contact {
	return &Contact{
		Email:            email,
		Name:             name,
		Source:           source,
		AddedAt:          time.Now().UTC().Format(time.RFC3339),
		Classification:   classification,
		Status:           StatusActive,
		UnsubscribeToken: unsubscribeToken,
		Reason:           reason,
	}
}
