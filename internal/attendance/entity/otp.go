package entity

import "time"

// OTPRecord is one row of the append-only attendance code log.
type OTPRecord struct {
	ID           int64
	Code         string
	IssuerID     string
	ClaimantID   string // empty until redeemed
	ClaimantName string
	Status       OTPStatus
	CreatedAt    time.Time
	ExpiresAt    time.Time
	VerifiedAt   *time.Time
}

// CurrentOTP is the code shown on the trainer screen.
type CurrentOTP struct {
	Code        string
	GeneratedAt time.Time
}

// NewOTP is the record inserted by each issuer tick.
type NewOTP struct {
	ID        int64
	Code      string
	IssuerID  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Claim carries the identity that redeems a code.
type Claim struct {
	ClaimantID   string
	ClaimantName string
	VerifiedAt   time.Time
}

type OTPStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Expired  int64 `json:"expired"`
}

type OTPListFilter struct {
	Limit  int32
	Offset int32
}

// VerifiedRangeFilter selects redeemed records by verification time,
// From inclusive and To exclusive.
type VerifiedRangeFilter struct {
	From time.Time
	To   time.Time
}
