package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ExpectedSignature computes the hex HMAC-SHA256 of "orderID|paymentID"
// under the shared gateway secret. This is the signature the gateway
// attaches to its settlement callback.
func ExpectedSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// signatureMatches compares the supplied signature in constant time.
func signatureMatches(orderID, paymentID, secret, supplied string) bool {
	expected := ExpectedSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
