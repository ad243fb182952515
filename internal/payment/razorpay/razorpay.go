// Package razorpay verifies payment callback signatures.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type Config struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
}

// Verifier checks HMAC-SHA256 signatures Razorpay attaches to successful
// payments. The signed payload is "<order_id>|<payment_id>" keyed with the
// account secret.
type Verifier struct {
	secret []byte
}

func New(c *Config) (*Verifier, error) {
	if c.KeySecret == "" {
		return nil, fmt.Errorf("razorpay key secret is not set")
	}
	return &Verifier{secret: []byte(c.KeySecret)}, nil
}

func (v *Verifier) Verify(orderRef, paymentRef, signature string) bool {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
