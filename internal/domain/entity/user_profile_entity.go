package entity

import "time"

// UserProfile is the optional 1:1 extension of a User. It exists only when
// registration supplied profile fields; its lifetime never exceeds the
// owning User's.
type UserProfile struct {
	UserID              int64
	ChurchName          string
	Position            string
	Denomination        string
	Address             string
	Postcode            string
	BirthDate           *time.Time
	Gender              string
	ProfileImage        string
	NewsletterSubscribe bool
	MarketingAgree      bool
	// Consent timestamps are stamped by the server at creation time, never
	// accepted from the client.
	PrivacyAgreeDate time.Time
	TermsAgreeDate   time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
