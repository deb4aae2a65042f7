package transcript

import (
	"bytes"
	"encoding/binary"
)

// Transcript is the sent/received byte record produced by the external
// TLS-verification collaborator. Sent and Received arrive base64-encoded;
// this core never re-verifies the underlying TLS or MPC session.
type Transcript struct {
	Sent       string `json:"sent"`
	Received   string `json:"received"`
	ServerName string `json:"serverName"`
}

// ProofMaterial is the canonical byte form of the transcript used for replay
// fingerprinting. Each component is length-prefixed so content can never
// shift across component boundaries: two transcripts share proof material
// only when sent, received, and server name are all byte-identical.
func (t Transcript) ProofMaterial() []byte {
	var buf bytes.Buffer
	for _, part := range []string{t.Sent, t.Received, t.ServerName} {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(part)))
		buf.Write(length[:])
		buf.WriteString(part)
	}
	return buf.Bytes()
}

// ValidationResult is the structured outcome of transcript validation.
// Extracted holds every field the best-effort scan could recover, lowercased.
// Unverified marks a transcript accepted under the demo policy without the
// expected field being present; production mode never produces it.
type ValidationResult struct {
	Valid      bool
	Unverified bool
	Extracted  map[string]string
}
