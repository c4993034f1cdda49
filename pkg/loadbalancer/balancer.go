// Package loadbalancer provides round-robin selection over the upstream
// targets a gateway prefix proxies to. With a single inventory service
// instance it degenerates to a fixed target; extra replicas can be added
// through services.yaml without touching the gateway.
package loadbalancer

import "sync"

type LoadBalancer struct {
	targets []string
	mu      sync.Mutex
	current int
}

func New(targets []string) *LoadBalancer {
	return &LoadBalancer{targets: targets}
}

// NextTarget returns the next upstream base URL in rotation.
func (lb *LoadBalancer) NextTarget() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if len(lb.targets) == 0 {
		return ""
	}
	target := lb.targets[lb.current]
	lb.current = (lb.current + 1) % len(lb.targets)
	return target
}

// Targets returns a copy of the configured upstreams.
func (lb *LoadBalancer) Targets() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	out := make([]string, len(lb.targets))
	copy(out, lb.targets)
	return out
}
