package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Current returns the code currently shown on the trainer screen.
// @Summary Current attendance code
// @Description Returns the active 4-digit attendance code and when it was generated.
// @Tags Attendance
// @Produce json
// @Success 200 {object} router.successResponse{data=CurrentResponse} "Current code"
// @Failure 503 {object} router.errorResponse "No code generated yet"
// @Router /api/v1/otp [get]
func (h *HTTPEndpoint) Current(r *router.Request) (any, error) {
	resp, err := h.uc.Current(r.Context())
	if err != nil {
		return nil, err
	}

	return CurrentResponse{Code: resp.Code, Timestamp: resp.Timestamp}, nil
}

// Verify redeems an attendance code for a trainee.
// @Summary Verify attendance code
// @Description Marks attendance when the code is pending and inside the redemption window.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Attendance marked"
// @Failure 400 {object} router.errorResponse "Invalid or expired code"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		Code:         req.Code,
		ClaimantID:   req.ClaimantID,
		ClaimantName: req.ClaimantName,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{Timestamp: resp.Timestamp, msg: resp.Message}, nil
}

// Stats summarises the codes issued during the last 24 hours.
// @Summary Attendance code statistics
// @Tags Attendance
// @Produce json
// @Success 200 {object} router.successResponse{data=StatsResponse} "Counts by status"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/stats [get]
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	st, err := h.uc.Stats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{Total: st.Total, Pending: st.Pending, Verified: st.Verified, Expired: st.Expired}, nil
}

// ListAll pages through every issued code, newest first.
// @Summary List attendance codes
// @Tags Attendance
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} router.successResponse{data=ListAllResponse} "Code records"
// @Failure 400 {object} router.errorResponse "Invalid query"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/all [get]
func (h *HTTPEndpoint) ListAll(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListAll(r.Context(), usecase.ListAllInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	return ListAllResponse{
		Records: toRecordResponses(resp.Records),
		limit:   resp.Limit,
		offset:  resp.Offset,
	}, nil
}

// ListByTrainee returns the attendance a trainee has marked.
// @Summary Trainee attendance history
// @Tags Attendance
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} router.successResponse{data=TraineeRecordsResponse} "Verified records"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/trainee/{id} [get]
func (h *HTTPEndpoint) ListByTrainee(r *router.Request) (any, error) {
	id := r.GetParam("id")

	records, err := h.uc.ListByClaimant(r.Context(), usecase.ListByClaimantInput{ClaimantID: id})
	if err != nil {
		return nil, err
	}

	return TraineeRecordsResponse{ClaimantID: id, Records: toRecordResponses(records)}, nil
}

// IVRCall queues a phone call that reads the current code to a trainee.
// @Summary Request IVR call
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body IVRCallRequest true "IVR call payload"
// @Success 200 {object} router.successResponse{data=IVRCallResponse} "Call queued"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Call already requested"
// @Failure 503 {object} router.errorResponse "No code generated yet"
// @Router /api/v1/otp/ivr-call [post]
func (h *HTTPEndpoint) IVRCall(r *router.Request) (any, error) {
	var req IVRCallRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.IVRCall(r.Context(), usecase.IVRCallInput{
		PhoneNumber: req.PhoneNumber,
		TraineeName: req.TraineeName,
	})
	if err != nil {
		return nil, err
	}

	return IVRCallResponse{Instruction: resp.Instruction, CurrentOTP: resp.CurrentOTP, msg: resp.Message}, nil
}

// Export uploads the verified attendance of a date range as CSV.
// @Summary Export attendance
// @Description Writes verified records between from and to (inclusive, at most 31 days) to object storage and returns a signed download link.
// @Tags Attendance
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} router.successResponse{data=ExportResponse} "Export link"
// @Failure 400 {object} router.errorResponse "Invalid range"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/otp/export [get]
func (h *HTTPEndpoint) Export(r *router.Request) (any, error) {
	from, err := r.GetQueryDate("from", time.DateOnly)
	if err != nil {
		return nil, err
	}
	to, err := r.GetQueryDate("to", time.DateOnly)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Export(r.Context(), usecase.ExportInput{From: from, To: to})
	if err != nil {
		return nil, err
	}

	return ExportResponse{URL: resp.URL, Key: resp.Key, Total: resp.Total}, nil
}

func toRecordResponses(records []entity.OTPRecord) []OTPRecordResponse {
	return lo.Map(records, func(rec entity.OTPRecord, _ int) OTPRecordResponse {
		return OTPRecordResponse{
			ID:           rec.ID,
			Code:         rec.Code,
			ClaimantID:   rec.ClaimantID,
			ClaimantName: rec.ClaimantName,
			Status:       rec.Status.String(),
			CreatedAt:    rec.CreatedAt,
			ExpiresAt:    rec.ExpiresAt,
			VerifiedAt:   rec.VerifiedAt,
		}
	})
}
