package loadbalancer

import "testing"

func TestNextTargetRoundRobin(t *testing.T) {
	lb := New([]string{"http://a:7143", "http://b:7143"})
	want := []string{"http://a:7143", "http://b:7143", "http://a:7143"}
	for i, w := range want {
		if got := lb.NextTarget(); got != w {
			t.Errorf("call %d = %q, want %q", i, got, w)
		}
	}
}

func TestNextTargetEmpty(t *testing.T) {
	lb := New(nil)
	if got := lb.NextTarget(); got != "" {
		t.Errorf("empty balancer returned %q", got)
	}
}

func TestTargetsReturnsCopy(t *testing.T) {
	lb := New([]string{"http://a:7143"})
	targets := lb.Targets()
	targets[0] = "mutated"
	if lb.Targets()[0] != "http://a:7143" {
		t.Error("Targets must return a copy")
	}
}
