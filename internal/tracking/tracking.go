// Package tracking issues shipment tracking codes: a prefix, the last eight
// digits of a millisecond clock and five random base36 characters.
package tracking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

const (
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength = 5
	clockDigits  = 8
	clockModulus = 100_000_000
)

type Generator struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: strings.ToUpper(prefix), now: time.Now}
}

// Next returns a new code. The clock part never repeats within a process:
// calls in the same millisecond borrow the next millisecond value.
func (g *Generator) Next() (string, error) {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	suffix, err := randomSuffix()
	if err != nil {
		return "", fmt.Errorf("tracking suffix: %w", err)
	}
	return fmt.Sprintf("%s%0*d%s", g.prefix, clockDigits, ms%clockModulus, suffix), nil
}

func randomSuffix() (string, error) {
	var b strings.Builder
	b.Grow(suffixLength)
	base := big.NewInt(int64(len(alphabet)))
	for i := 0; i < suffixLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}
