package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	bucket := newTokenBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		if !bucket.allow() {
			t.Errorf("request %d within burst should be allowed", i+1)
		}
	}
	if bucket.allow() {
		t.Error("request beyond burst should be denied")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 10.0) // refills fast enough to test

	bucket.allow()
	bucket.allow()
	if bucket.allow() {
		t.Error("bucket should be empty")
	}

	time.Sleep(150 * time.Millisecond)
	if !bucket.allow() {
		t.Error("expected a token after refill")
	}
}

func TestLimiter_RegisterEndpointBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	// register allows a burst of 3 per client
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/api/auth/register", "POST")
		if !allowed {
			t.Errorf("register attempt %d should be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Limit = %d, want 10", info.Limit)
		}
	}

	allowed, info := limiter.Allow("10.0.0.1", "/api/auth/register", "POST")
	if allowed {
		t.Error("register attempt past the burst should be denied")
	}
	if info.RetryAfter <= 0 {
		t.Error("denied request should carry a positive RetryAfter")
	}

	// a different client has its own bucket
	if allowed, _ := limiter.Allow("10.0.0.2", "/api/auth/register", "POST"); !allowed {
		t.Error("another client should not share the exhausted bucket")
	}
}

func TestLimiter_MessageRouteUsesPrefixConfig(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	_, info := limiter.Allow("10.0.0.1", "/api/conversations/abc123/messages", "POST")
	if info.Limit != 200 {
		t.Errorf("message append Limit = %d, want the conversations/ prefix tier 200", info.Limit)
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("health probe %d should never be limited", i+1)
		}
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/api/auth/login", "POST"); !allowed {
			t.Fatal("disabled limiter should allow everything")
		}
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.9": true},
		Blacklist:     map[string]bool{"10.0.0.6": true},
	})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("10.0.0.9", "/api/conversations", "GET"); !allowed {
			t.Fatal("whitelisted client should never be limited")
		}
	}
	if allowed, _ := limiter.Allow("10.0.0.6", "/api/conversations", "GET"); allowed {
		t.Error("blacklisted client should always be denied")
	}
}

func TestLimiter_ConcurrentClientsDoNotOverdraw(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  50,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("10.0.0.1", "/api/conversations", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 50 {
		t.Errorf("allowed %d concurrent requests, want exactly the limit of 50", allowedCount)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "login exact", path: "/api/auth/login", method: "POST", wantLimit: 20},
		{name: "delete by prefix", path: "/api/conversations/abc", method: "DELETE", wantLimit: 100},
		{name: "method mismatch falls through", path: "/api/auth/login", method: "GET", wantNil: true},
		{name: "unknown path", path: "/api/unknown", method: "GET", wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("MatchEndpoint() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("MatchEndpoint() = nil, want a config")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
		})
	}
}
