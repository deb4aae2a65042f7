package httptransport

import (
	"net/http"
	"strings"

	"claimgate/internal/claims/models"
	"claimgate/internal/claims/oracle"
	"claimgate/internal/ledger"
	"claimgate/internal/platform/device"
	"claimgate/internal/platform/middleware"
	"claimgate/internal/tracer"
	"claimgate/internal/transport/httputil"
)

// expectedField is the transcript field every eligibility submission must
// carry.
const expectedField = "eligible"

// defaultExtractedValue applies when the client omits extractedValue.
const defaultExtractedValue = "true"

// handleSubmitProof validates the transcript and relays the claim write.
// Validation order matters for stable error codes: address shape, required
// fields, transcript content, then the oracle.
func (h *Handler) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitProofRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	subject, err := models.ParseAddress(req.WalletAddress)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if req.Transcript.Received == "" {
		httputil.WriteErrorMessage(w, http.StatusBadRequest,
			"Missing required field: transcript.received", "MISSING_FIELD")
		return
	}
	claimTypeName := strings.ToUpper(strings.TrimSpace(req.ClaimType))
	if claimTypeName == "" {
		httputil.WriteErrorMessage(w, http.StatusBadRequest,
			"Missing required field: claimType", "MISSING_FIELD")
		return
	}

	ctx, span := h.tracer.Start(ctx, tracer.SpanProofSubmit,
		tracer.String(tracer.AttrSubject, subject.String()),
		tracer.String(tracer.AttrClaimType, claimTypeName),
	)
	var retErr error
	defer func() { span.End(retErr) }()

	expectedValue := req.ExtractedValue
	if expectedValue == "" {
		expectedValue = defaultExtractedValue
	}

	_, validateSpan := h.tracer.Start(ctx, tracer.SpanTranscriptValidate)
	result, err := h.validator.Validate(req.Transcript, expectedField, expectedValue)
	validateSpan.End(err)
	if err != nil {
		retErr = err
		httputil.WriteError(w, err)
		return
	}
	if result.Unverified {
		span.SetAttributes(tracer.Bool(tracer.AttrUnverified, true))
	}

	claimValue := expectedValue
	if extracted, ok := result.Extracted[expectedField]; ok {
		claimValue = extracted
	}

	if h.wallet == nil {
		retErr = ledger.ErrWalletNotConfigured
		httputil.WriteError(w, ledger.ErrWalletNotConfigured)
		return
	}

	userAgent := middleware.GetUserAgent(ctx)
	submitted, err := h.submitter.Submit(ctx, oracle.SubmitRequest{
		Caller:    h.wallet.Address(),
		Subject:   subject,
		ClaimType: models.CanonicalClaimType(claimTypeName),
		Value:     models.NewClaimValue(claimValue),
		Proof:     req.Transcript.ProofMaterial(),
		ClientIP:  middleware.GetClientIP(ctx),
		Device:    device.Describe(userAgent),
		DeviceID:  device.Fingerprint(userAgent),
	})
	if err != nil {
		retErr = err
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, SubmitProofResponse{
		Success:    true,
		TxHash:     submitted.TxHash,
		ClaimType:  claimTypeName,
		ClaimValue: claimValue,
		Expiry:     submitted.Expiry,
		Unverified: result.Unverified,
	})
}
