package tracking

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^RUM\d{8}[0-9A-Z]{5}$`)

func TestNextFormat(t *testing.T) {
	g := NewGenerator("rum")
	g.now = func() time.Time { return time.UnixMilli(1_717_171_234_567) }

	code, err := g.Next()
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)
	assert.Equal(t, "RUM71234567", code[:11])
}

func TestNextNeverRepeats(t *testing.T) {
	g := NewGenerator("RUM")
	frozen := time.Now()
	g.now = func() time.Time { return frozen }

	const workers, perWorker = 8, 5000
	codes := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				code, err := g.Next()
				if err != nil {
					t.Error(err)
					return
				}
				codes <- code
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]struct{}, workers*perWorker)
	for code := range codes {
		assert.Regexp(t, codePattern, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}
