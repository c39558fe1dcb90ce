package event

import "time"

const IVRCallDestination string = "attendance_ivr_call"
const IVRCallDestinationConsumerDialer string = "attendance_ivr_call_dialer"

// IVRCallMessage asks the telephony worker to read the current code to a
// trainee over the phone.
type IVRCallMessage struct {
	PhoneNumber string    `json:"phone_number"`
	TraineeName string    `json:"trainee_name,omitempty"`
	CurrentOTP  string    `json:"current_otp"`
	RequestedAt time.Time `json:"requested_at"`
}
