package inbound

import "time"

type CurrentResponse struct {
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type VerifyRequest struct {
	Code         string `json:"code"`
	ClaimantID   string `json:"claimant_id"`
	ClaimantName string `json:"claimant_name"`
}

type VerifyResponse struct {
	Timestamp time.Time `json:"timestamp"`

	msg string
}

func (v VerifyResponse) Message() string { return v.msg }

type StatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Expired  int64 `json:"expired"`
}

type OTPRecordResponse struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	ClaimantID   string     `json:"claimant_id,omitempty"`
	ClaimantName string     `json:"claimant_name,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
}

type ListAllResponse struct {
	Records []OTPRecordResponse `json:"records"`

	limit  int32
	offset int32
}

func (l ListAllResponse) Meta() map[string]any {
	return map[string]any{"limit": l.limit, "offset": l.offset, "count": len(l.Records)}
}

type TraineeRecordsResponse struct {
	ClaimantID string              `json:"claimant_id"`
	Records    []OTPRecordResponse `json:"records"`
}

type IVRCallRequest struct {
	PhoneNumber string `json:"phone_number"`
	TraineeName string `json:"trainee_name"`
}

type IVRCallResponse struct {
	Instruction string `json:"instruction"`
	CurrentOTP  string `json:"current_otp"`

	msg string
}

func (i IVRCallResponse) Message() string { return i.msg }

type ExportResponse struct {
	URL   string `json:"url"`
	Key   string `json:"key"`
	Total int    `json:"total"`
}
