package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeDateBasedToken(createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not produce an error")
	assert.Equal(t, createdAt, decoded, "Timestamp should survive the round trip")

	// Zero time round-trips as well
	zeroToken := EncodeDateBasedToken(time.Time{})
	decodedZero, err := DecodeDateBasedToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero(), "Zero time should decode to zero time")
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	// Not base64 at all
	_, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err, "Invalid base64 should fail")

	// Valid base64, but not a timestamp
	_, err = DecodeDateBasedToken("bm90LWEtZGF0ZQ==")
	assert.Error(t, err, "Non-timestamp payload should fail")
}
