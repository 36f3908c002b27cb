package words

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

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Daily hands out the same word to every game started on a given UTC date.
type Daily struct {
	list []string
	salt string
	now  func() time.Time
}

// NewDaily returns a Daily source over list keyed by salt.
func NewDaily(list []string, salt string) (*Daily, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return &Daily{list: append([]string(nil), list...), salt: salt, now: time.Now}, nil
}

func (d *Daily) Next() (string, error) {
	return d.list[WordIndex(d.now(), d.salt, len(d.list))], nil
}
