package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Subject   string
	Agent     string
	Action    string
	TxHash    string
	ClientIP  string
	Device    string
	DeviceID  string
	Reason    string
}

type AuditEvent string

const (
	EventClaimSubmitted   AuditEvent = "claim_submitted"
	EventProofReplayed    AuditEvent = "proof_replayed"
	EventUnauthorized     AuditEvent = "unauthorized_submission"
	EventTokenMinted      AuditEvent = "token_minted"
	EventMintDenied       AuditEvent = "mint_denied"
	EventTokenTransferred AuditEvent = "token_transferred"
	EventAgentGranted     AuditEvent = "agent_granted"
	EventAgentRevoked     AuditEvent = "agent_revoked"
)
