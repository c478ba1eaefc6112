package auth

import (
	"log"
	"sync"
	"time"
)

const (
	// DefaultInactivityLimit is how long a session may sit without a
	// qualifying interaction before it is logged out.
	DefaultInactivityLimit = 10 * time.Minute

	// DefaultWatchdogPoll is the watchdog's polling interval. The timeout is
	// coarse: a session can overstay by up to one interval.
	DefaultWatchdogPoll = 5 * time.Second
)

// StartWatchdog polls session activity and logs out any session idle past
// the inactivity limit. The returned stop tears the watchdog down.
func (r *Resolver) StartWatchdog() (stop func()) {
	ticker := time.NewTicker(r.watchdogPoll)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.expireIdle()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (r *Resolver) expireIdle() {
	cutoff := r.now().Add(-r.inactivityLimit)

	r.mu.Lock()
	var idle []string
	for uid, s := range r.sessions {
		if s.lastActivity.Before(cutoff) {
			idle = append(idle, uid)
		}
	}
	r.mu.Unlock()

	for _, uid := range idle {
		log.Printf("⏰ session %s idle past limit, logging out", uid)
		r.Logout(uid)
	}
}
