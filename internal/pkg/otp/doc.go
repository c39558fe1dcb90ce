// Package otp generates short numeric one-time codes for attendance
// verification.
//
// Codes are drawn from crypto/rand so that consecutive codes cannot be
// predicted from earlier ones.
package otp
