package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	v, err := New(&Config{KeyID: "rzp_test", KeySecret: "topsecret"})
	require.NoError(t, err)

	orderRef := "order_N8xF2a"
	paymentRef := "pay_N8xGk1"
	good := sign("topsecret", orderRef+"|"+paymentRef)

	assert.True(t, v.Verify(orderRef, paymentRef, good))
	assert.False(t, v.Verify(orderRef, paymentRef, "deadbeef"))
	assert.False(t, v.Verify(paymentRef, orderRef, good), "payload order matters")

	wrongKey := sign("othersecret", orderRef+"|"+paymentRef)
	assert.False(t, v.Verify(orderRef, paymentRef, wrongKey))
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(&Config{KeyID: "rzp_test"})
	require.Error(t, err)
}
