package event

import "time"

const AttendanceMarkedDestination string = "attendance_marked"
const AttendanceMarkedDestinationConsumerAudit string = "attendance_marked_audit"

type AttendanceMarkedMessage struct {
	RecordID     int64     `json:"record_id"`
	Code         string    `json:"code"`
	ClaimantID   string    `json:"claimant_id"`
	ClaimantName string    `json:"claimant_name,omitempty"`
	VerifiedAt   time.Time `json:"verified_at"`
}
