package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const refAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

// NewBookingRef generates a human-readable booking reference of the form
// WS-<base36 unix millis>-<6 random chars>. The timestamp fragment keeps
// references sortable while the random suffix guards against collisions.
func NewBookingRef() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to nanos.
		return fmt.Sprintf("WS-%s-%06d", ts, time.Now().Nanosecond()%1000000)
	}
	for i, b := range buf {
		buf[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return fmt.Sprintf("WS-%s-%s", ts, string(buf))
}
