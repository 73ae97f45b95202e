package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives the random seed for a daily session from HMAC(salt, YYYY-MM-DD).
//
// A daily game is a whole sequence of rounds (targets and distractors), not a
// single answer, so the date picks the seed for the selector instead of one
// catalog index. Every daily session started on the same UTC day replays the
// same sequence, and the salt keeps tomorrow's sequence unguessable.
func Seed(date time.Time, salt string) uint64 {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	return binary.BigEndian.Uint64(mac.Sum(nil)[:8])
}
