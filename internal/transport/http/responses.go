package httptransport

// SubmitProofResponse is the success body of POST /submit-proof.
type SubmitProofResponse struct {
	Success    bool   `json:"success"`
	TxHash     string `json:"txHash"`
	ClaimType  string `json:"claimType"`
	ClaimValue string `json:"claimValue"`
	Expiry     uint64 `json:"expiry"`
	Unverified bool   `json:"unverified,omitempty"`
}

// StatusResponse is the success body of GET /status/{txHash}.
// BlockNumber and Confirmations are present only once a receipt exists.
type StatusResponse struct {
	Success       bool    `json:"success"`
	TxHash        string  `json:"txHash"`
	Status        string  `json:"status"`
	BlockNumber   *uint64 `json:"blockNumber,omitempty"`
	Confirmations *uint64 `json:"confirmations,omitempty"`
}

// MintResponse is the success body of POST /mint.
type MintResponse struct {
	Success   bool   `json:"success"`
	TxHash    string `json:"txHash"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Symbol    string `json:"symbol"`
}

// TransferResponse is the success body of POST /transfer.
type TransferResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  uint64 `json:"amount"`
	Symbol  string `json:"symbol"`
}

// RelayerResponse is the success body of GET /relayer.
type RelayerResponse struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

// AgentResponse is the success body of the agent management endpoints.
type AgentResponse struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
	Agent   bool   `json:"agent"`
}
