// Package httputil centralizes wire-level helpers for the HTTP transport:
// the response envelope, domain error translation, and request decoding.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	dErrors "claimgate/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; transcripts are small.
const maxBodyBytes = 1 << 20

// maxErrorMessageLength caps error text so raw ledger or driver output never
// reaches clients in full. The stable code carries the machine-readable part.
const maxErrorMessageLength = 200

// txHashPattern matches a 32-byte hex transaction hash.
var txHashPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)

// Envelope is the uniform response shape. Success responses embed their
// payload next to these fields; error responses carry a message and a stable
// machine-readable code.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// the error envelope.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), Envelope{
			Success: false,
			Error:   truncateMessage(domainErr.Message),
			Code:    DomainCodeToWireCode(domainErr.Code),
		})
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   "internal server error",
		Code:    DomainCodeToWireCode(dErrors.CodeInternal),
	})
}

// WriteErrorMessage writes an error envelope with an explicit message and
// wire code, for transport-level failures that never become domain errors.
func WriteErrorMessage(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, Envelope{Success: false, Error: message, Code: code})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput,
		dErrors.CodeInvalidAddress, dErrors.CodeFieldNotFound, dErrors.CodeValueMismatch,
		dErrors.CodeInvalidTranscript:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeProofReplay:
		return http.StatusConflict
	case dErrors.CodeForbidden, dErrors.CodeNotVerified:
		return http.StatusForbidden
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeWalletNotConfigured:
		return http.StatusServiceUnavailable
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	// An unauthorized relayer is a server misconfiguration, not a client
	// auth failure, so it does not map to 401.
	case dErrors.CodeUnauthorized, dErrors.CodeChainError, dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToWireCode translates domain error codes to the stable codes
// clients branch on.
func DomainCodeToWireCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "NOT_FOUND"
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return "BAD_REQUEST"
	case dErrors.CodeInvalidInput:
		return "INVALID_INPUT"
	case dErrors.CodeInvalidAddress:
		return "INVALID_ADDRESS"
	// A field absent from the transcript is a defect of the evidence, not of
	// the request shape, so it shares the transcript code. MISSING_FIELD is
	// reserved for omitted request fields.
	case dErrors.CodeFieldNotFound, dErrors.CodeInvalidTranscript:
		return "INVALID_TRANSCRIPT"
	case dErrors.CodeValueMismatch:
		return "VALUE_MISMATCH"
	case dErrors.CodeProofReplay:
		return "PROOF_REPLAY"
	case dErrors.CodeNotVerified:
		return "NOT_VERIFIED"
	case dErrors.CodeRateLimited:
		return "RATE_LIMITED"
	case dErrors.CodeWalletNotConfigured:
		return "WALLET_NOT_CONFIGURED"
	case dErrors.CodeUnauthorized:
		return "UNAUTHORIZED"
	case dErrors.CodeChainError:
		return "CHAIN_ERROR"
	case dErrors.CodeTimeout:
		return "TIMEOUT"
	case dErrors.CodeConflict:
		return "CONFLICT"
	case dErrors.CodeForbidden:
		return "FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

func truncateMessage(msg string) string {
	if len(msg) <= maxErrorMessageLength {
		return msg
	}
	return msg[:maxErrorMessageLength] + "..."
}

// ValidTxHash reports whether s has the shape of a transaction hash.
func ValidTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// DecodeJSON decodes a request body into dst with a size cap.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	return nil
}
