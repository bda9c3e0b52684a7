package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fixedClock lets tests advance time without sleeping.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(config *Config) (*Limiter, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiter(config)
	limiter.now = clock.now
	return limiter, clock
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow(clientID, "/jobs", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected %d remaining, got %d", 9-i, info.Remaining)
		}
	}

	// Should deny after limit
	allowed, info := limiter.Allow(clientID, "/jobs", "GET")
	if allowed {
		t.Error("Expected request to be denied after limit")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", info.Remaining)
	}
	// One token every 6s
	if info.RetryAfter <= 0 || info.RetryAfter > 6*time.Second {
		t.Errorf("Expected retry after in (0, 6s], got %v", info.RetryAfter)
	}

	// Page views share the default bucket
	if allowed, _ := limiter.Allow(clientID, "/blog", "GET"); allowed {
		t.Error("Expected other pages to share the exhausted default bucket")
	}

	// A different client has its own bucket
	if allowed, _ := limiter.Allow("10.0.0.2", "/jobs", "GET"); !allowed {
		t.Error("Expected a different client to be allowed")
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: 10 * time.Second, // 1 token per second
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow("client", "/", "GET")
	}
	if allowed, _ := limiter.Allow("client", "/", "GET"); allowed {
		t.Fatal("Expected bucket to be empty")
	}

	clock.advance(1100 * time.Millisecond)

	if allowed, _ := limiter.Allow("client", "/", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("client", "/", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: 10 * time.Second,
	})
	defer limiter.Stop()

	var info Info
	for i := 0; i < 5; i++ {
		_, info = limiter.Allow("client", "/", "GET")
	}
	if info.Remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", info.Remaining)
	}
	if want := clock.now().Add(5 * time.Second); !info.ResetTime.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, info.ResetTime)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     ParseIPList([]string{"127.0.0.1"}),
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/", "GET"); !allowed {
			t.Errorf("Expected whitelisted client request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Blacklist:     ParseIPList([]string{"192.168.1.1, 192.168.1.2"}),
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.2", "/", "GET"); allowed {
		t.Error("Expected blacklisted client to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       false,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("client", "/", "GET"); !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_LeadEndpoints(t *testing.T) {
	limiter, clock := newTestLimiter(DefaultConfig())
	defer limiter.Stop()

	clientID := "203.0.113.7"

	// Burst of 3 shared between the newsletter and employer endpoints
	paths := []string{"/api/lead", "/api/lead/employer-lead", "/api/lead"}
	for i, path := range paths {
		allowed, info := limiter.Allow(clientID, path, "POST")
		if !allowed {
			t.Errorf("Expected lead request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected lead limit 10, got %d", info.Limit)
		}
	}

	if allowed, _ := limiter.Allow(clientID, "/api/lead", "POST"); allowed {
		t.Error("Expected fourth newsletter submission to be denied")
	}

	// Page views are limited separately
	if allowed, _ := limiter.Allow(clientID, "/jobs", "GET"); !allowed {
		t.Error("Expected page view to be allowed while lead bucket is empty")
	}

	// 10 per hour refills one token every 6 minutes
	clock.advance(7 * time.Minute)
	if allowed, _ := limiter.Allow(clientID, "/api/lead", "POST"); !allowed {
		t.Error("Expected lead request to be allowed after refill")
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("client", "/health", "GET"); !allowed {
			t.Errorf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := LeadEndpointConfigs(10, time.Hour, 3)

	tests := []struct {
		path   string
		method string
		want   string
	}{
		{path: "/api/lead", method: "POST", want: "/api/lead"},
		{path: "/api/lead/employer-lead", method: "POST", want: "/api/lead/**"},
		{path: "/api/employer-lead", method: "POST", want: "/api/employer-lead"},
		{path: "/api/lead", method: "GET", want: ""},
		{path: "/api/jobs", method: "GET", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Expected no match, got %q", got.Path)
				}
				return
			}
			if got == nil || got.Path != tt.want {
				t.Errorf("Expected match %q, got %+v", tt.want, got)
			}
		})
	}

	if got := MatchEndpoint("/api/x", "GET", []EndpointConfig{{Path: "/api/*", Limit: 1, Window: time.Second}}); got == nil {
		t.Error("Expected empty method to match any method")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("client", "/", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/", "GET")
	}
	clock.advance(2 * time.Hour)
	limiter.Allow("recent", "/", "GET")

	limiter.cleanupBuckets(clock.now().Add(-time.Hour))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 1 {
		t.Errorf("Expected 1 bucket after cleanup, got %d", len(limiter.buckets))
	}
	if _, ok := limiter.buckets["recent:*"]; !ok {
		t.Error("Expected recent bucket to survive cleanup")
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Minute})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if !limiter.config.Enabled {
		t.Error("Expected default config to be enabled")
	}
	if limiter.config.DefaultLimit != 600 {
		t.Errorf("Expected default limit 600, got %d", limiter.config.DefaultLimit)
	}
	if len(limiter.config.EndpointConfigs) != 3 {
		t.Errorf("Expected 3 lead endpoint configs, got %d", len(limiter.config.EndpointConfigs))
	}
}
