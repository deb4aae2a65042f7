package transcript

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "claimgate/pkg/domain-errors"
)

func encodeBody(body string) string {
	return base64.StdEncoding.EncodeToString([]byte(body))
}

func bankTranscript(body string) Transcript {
	return Transcript{
		Sent:       encodeBody("GET /api/account HTTP/1.1\r\nHost: mockbank.example\r\n"),
		Received:   encodeBody(body),
		ServerName: "mockbank.example",
	}
}

type ValidatorSuite struct {
	suite.Suite
	validator *Validator
}

func (s *ValidatorSuite) SetupTest() {
	s.validator = New()
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) TestStructuralChecks() {
	s.Run("rejects empty received", func() {
		t := bankTranscript("{}")
		t.Received = ""
		_, err := s.validator.Validate(t, "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTranscript))
	})

	s.Run("rejects empty server name", func() {
		t := bankTranscript(`{"eligible":true}`)
		t.ServerName = ""
		_, err := s.validator.Validate(t, "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTranscript))
	})

	s.Run("rejects invalid base64", func() {
		t := bankTranscript("{}")
		t.Received = "%%%not-base64%%%"
		_, err := s.validator.Validate(t, "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTranscript))
	})

	s.Run("rejects non-utf8 payload", func() {
		t := bankTranscript("{}")
		t.Received = base64.StdEncoding.EncodeToString([]byte{0xfe, 0xc0, 0xc1, 0xfe})
		_, err := s.validator.Validate(t, "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTranscript))
	})
}

func (s *ValidatorSuite) TestFieldExtraction() {
	s.Run("accepts matching boolean field", func() {
		result, err := s.validator.Validate(bankTranscript(`{"eligible":true,"balance":1000}`), "eligible", "true")
		s.Require().NoError(err)
		s.True(result.Valid)
		s.False(result.Unverified)
		s.Equal("true", result.Extracted["eligible"])
	})

	s.Run("field label match is case-insensitive", func() {
		result, err := s.validator.Validate(bankTranscript(`{"ELIGIBLE": TRUE}`), "eligible", "true")
		s.Require().NoError(err)
		s.Equal("true", result.Extracted["eligible"])
	})

	s.Run("value comparison is case-insensitive", func() {
		_, err := s.validator.Validate(bankTranscript(`{"eligible":true}`), "eligible", "TRUE")
		s.NoError(err)
	})

	s.Run("extracts quoted string values", func() {
		result, err := s.validator.Validate(bankTranscript(`{"eligible":"True"}`), "eligible", "true")
		s.Require().NoError(err)
		s.Equal("true", result.Extracted["eligible"])
	})

	s.Run("extracts sibling accredited field", func() {
		result, err := s.validator.Validate(bankTranscript(`{"eligible":true,"accredited":false}`), "eligible", "true")
		s.Require().NoError(err)
		s.Equal("false", result.Extracted["accredited"])
	})

	s.Run("empty expected value accepts any extracted value", func() {
		result, err := s.validator.Validate(bankTranscript(`{"eligible":false}`), "eligible", "")
		s.Require().NoError(err)
		s.Equal("false", result.Extracted["eligible"])
	})

	s.Run("tolerates redaction filler bytes", func() {
		body := "HTTP/1.1 200 OK\r\n\r\n\x00\x00\x00{\"eligible\": true}\xff\xff"
		t := bankTranscript("")
		t.Received = base64.StdEncoding.EncodeToString([]byte(body))
		result, err := s.validator.Validate(t, "eligible", "true")
		s.Require().NoError(err)
		s.Equal("true", result.Extracted["eligible"])
	})
}

func (s *ValidatorSuite) TestValueMismatch() {
	s.Run("found but wrong value is fatal", func() {
		_, err := s.validator.Validate(bankTranscript(`{"eligible":false}`), "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeValueMismatch))
	})

	s.Run("mismatch is fatal in demo mode too", func() {
		demo := New(WithDemoMode(true))
		_, err := demo.Validate(bankTranscript(`{"eligible":false}`), "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeValueMismatch))
	})
}

func (s *ValidatorSuite) TestMissingFieldPolicy() {
	body := `{"balance":1000,"currency":"USD"}`

	s.Run("fatal by default", func() {
		_, err := s.validator.Validate(bankTranscript(body), "eligible", "true")
		s.True(dErrors.HasCode(err, dErrors.CodeFieldNotFound))
	})

	s.Run("accepted but unverified in demo mode", func() {
		demo := New(WithDemoMode(true))
		result, err := demo.Validate(bankTranscript(body), "eligible", "true")
		s.Require().NoError(err)
		s.True(result.Valid)
		s.True(result.Unverified)
	})
}

func (s *ValidatorSuite) TestExtractFields() {
	s.Run("extracts multiple known fields", func() {
		got := ExtractFields(`...{"eligible":true,"accredited":false}...`, []string{"eligible", "accredited"})
		s.Equal(map[string]string{"eligible": "true", "accredited": "false"}, got)
	})

	s.Run("omits absent keys", func() {
		got := ExtractFields(`{"accredited":false}`, []string{"eligible", "accredited"})
		_, ok := got["eligible"]
		s.False(ok)
		s.Equal("false", got["accredited"])
	})

	s.Run("extracts numeric values", func() {
		got := ExtractFields(`{"balance": 1024.50}`, []string{"balance"})
		s.Equal("1024.50", got["balance"])
	})
}

func (s *ValidatorSuite) TestProofMaterial() {
	s.Run("identical transcripts share proof material", func() {
		a := bankTranscript(`{"eligible":true}`)
		b := bankTranscript(`{"eligible":true}`)
		s.Equal(a.ProofMaterial(), b.ProofMaterial())
	})

	s.Run("any component change alters proof material", func() {
		base := bankTranscript(`{"eligible":true}`)
		variants := []Transcript{
			{Sent: base.Sent + "x", Received: base.Received, ServerName: base.ServerName},
			{Sent: base.Sent, Received: encodeBody(`{"eligible":true,"x":1}`), ServerName: base.ServerName},
			{Sent: base.Sent, Received: base.Received, ServerName: "other.example"},
		}
		for _, v := range variants {
			s.NotEqual(base.ProofMaterial(), v.ProofMaterial())
		}
	})

	s.Run("content cannot shift across component boundaries", func() {
		v := encodeBody(`{"eligible":true}`)
		a := Transcript{Sent: v, Received: v, ServerName: v + "|" + v}
		b := Transcript{Sent: v + "|" + v, Received: v, ServerName: v}

		_, err := s.validator.Validate(a, "eligible", "true")
		s.Require().NoError(err)
		_, err = s.validator.Validate(b, "eligible", "true")
		s.Require().NoError(err)

		s.NotEqual(a.ProofMaterial(), b.ProofMaterial())
	})
}

func (s *ValidatorSuite) TestIsDemoProof() {
	s.Run("detects mockbank fixtures", func() {
		s.True(IsDemoProof(bankTranscript(`{"bank":"mockbank","eligible":true}`)))
	})

	s.Run("live transcripts are not demo", func() {
		s.False(IsDemoProof(bankTranscript(`{"eligible":true}`)))
	})

	s.Run("undecodable transcripts are not demo", func() {
		t := bankTranscript("")
		t.Received = "???"
		s.False(IsDemoProof(t))
	})
}
