package entity

// OTPStatus is stored as SMALLINT.
type OTPStatus int16

const (
	OTPStatusUnknown OTPStatus = iota
	OTPStatusPending
	OTPStatusVerified
	OTPStatusExpired
)

func (s OTPStatus) String() string {
	switch s {
	case OTPStatusPending:
		return "pending"
	case OTPStatusVerified:
		return "verified"
	case OTPStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Ensure maps out of range values to OTPStatusUnknown.
func (s OTPStatus) Ensure() OTPStatus {
	switch s {
	case OTPStatusPending, OTPStatusVerified, OTPStatusExpired:
		return s
	default:
		return OTPStatusUnknown
	}
}
