package httptransport

import "claimgate/internal/transcript"

// SubmitProofRequest is the body of POST /submit-proof.
type SubmitProofRequest struct {
	WalletAddress  string                `json:"walletAddress"`
	Transcript     transcript.Transcript `json:"transcript"`
	ClaimType      string                `json:"claimType"`
	ExtractedValue string                `json:"extractedValue,omitempty"`
}

// MintRequest is the body of POST /mint.
type MintRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// GrantAgentRequest is the body of POST /admin/agents.
type GrantAgentRequest struct {
	Address string `json:"address"`
}
