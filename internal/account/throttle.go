package account

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Login attempt tier: strict, applied per username.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginThrottle limits credential checks per username so a stolen terminal
// cannot brute-force accounts between keystrokes.
type loginThrottle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{visitors: make(map[string]*visitor)}
}

func (t *loginThrottle) allow(username string) bool {
	key := strings.ToLower(username)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune()

	v, exists := t.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(limitStrict, burstStrict)}
		t.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// prune drops entries idle longer than three minutes. Runs under mu.
func (t *loginThrottle) prune() {
	for key, v := range t.visitors {
		if time.Since(v.lastSeen) > 3*time.Minute {
			delete(t.visitors, key)
		}
	}
}
