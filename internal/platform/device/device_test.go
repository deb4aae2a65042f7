package device

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

const chromeMacUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
const chromeMacNewerUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

type DeviceSuite struct {
	suite.Suite
}

func TestDeviceSuite(t *testing.T) {
	suite.Run(t, new(DeviceSuite))
}

func (s *DeviceSuite) TestFingerprint() {
	s.Run("empty user agent yields empty fingerprint", func() {
		s.Empty(Fingerprint(""))
	})

	s.Run("same user agent yields same fingerprint", func() {
		s.Equal(Fingerprint(chromeMacUA), Fingerprint(chromeMacUA))
	})

	s.Run("fingerprint is hex encoded sha256", func() {
		s.Len(Fingerprint(chromeMacUA), 64)
	})

	s.Run("major version change changes fingerprint", func() {
		s.NotEqual(Fingerprint(chromeMacUA), Fingerprint(chromeMacNewerUA))
	})
}

func (s *DeviceSuite) TestDescribe() {
	s.Run("known browser and os", func() {
		s.Contains(Describe(chromeMacUA), "Chrome on ")
	})

	s.Run("empty user agent", func() {
		s.Equal("Unknown Device", Describe(""))
	})
}
