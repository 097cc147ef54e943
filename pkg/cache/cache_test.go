package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

func resp(text string) *models.GenerateResponse {
	return &models.GenerateResponse{Model: "test-model", Response: text, Done: true}
}

func TestKeyDeterministic(t *testing.T) {
	k1 := Key("what is 2+2", "llama2:7b")
	k2 := Key("what is 2+2", "llama2:7b")
	k3 := Key("what is 2+2", "mistral:7b")
	k4 := Key("what is 2+3", "llama2:7b")

	if k1 != k2 {
		t.Error("same input should produce same key")
	}
	if k1 == k3 {
		t.Error("different model should produce different key")
	}
	if k1 == k4 {
		t.Error("different prompt should produce different key")
	}
}

func TestKeySeparator(t *testing.T) {
	// The NUL separator keeps shifted prompt/model splits distinct.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("shifted prompt/model boundary should not collide")
	}
}

func TestKeyCollisionFree(t *testing.T) {
	seen := make(map[string]string, 1000)
	for i := 0; i < 1000; i++ {
		prompt := fmt.Sprintf("question number %d", i)
		k := Key(prompt, "llama2:7b")
		if prev, ok := seen[k]; ok {
			t.Fatalf("collision between %q and %q", prev, prompt)
		}
		seen[k] = prompt
	}
}

func TestPutAndGet(t *testing.T) {
	c := New(time.Hour, 10)
	k := Key("hello", "m")

	c.Put(k, resp("world"))

	got, ok := c.Get(k)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Response != "world" {
		t.Errorf("unexpected response: %q", got.Response)
	}

	// Put sets the access count to 1, the hit raises it to 2.
	stats := c.Stats()
	if stats.TotalAccesses != 2 {
		t.Errorf("expected 2 total accesses, got %d", stats.TotalAccesses)
	}
}

func TestGetMiss(t *testing.T) {
	c := New(time.Hour, 10)

	if _, ok := c.Get(Key("absent", "m")); ok {
		t.Error("expected miss for absent key")
	}
	if _, ok := c.Get(""); ok {
		t.Error("expected miss for empty key")
	}

	stats := c.Stats()
	if stats.Misses != 2 {
		t.Errorf("expected 2 misses, got %d", stats.Misses)
	}
}

func TestExpiry(t *testing.T) {
	c := New(10*time.Millisecond, 10)
	k := Key("short lived", "m")

	c.Put(k, resp("x"))
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(k); ok {
		t.Fatal("expected miss after expiry")
	}
	if stats := c.Stats(); stats.Total != 0 {
		t.Errorf("expired entry should be removed on lookup, total = %d", stats.Total)
	}
}

func TestEvictionKeepsMostAccessed(t *testing.T) {
	const max = 10
	c := New(time.Hour, max)

	keys := make([]string, max+1)
	for i := 0; i < max; i++ {
		keys[i] = Key(fmt.Sprintf("q%d", i), "m")
		c.Put(keys[i], resp(fmt.Sprintf("a%d", i)))
	}

	// Boost the first five entries.
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			c.Get(keys[i])
		}
	}

	// The overflowing put triggers batch eviction down to max/2.
	keys[max] = Key("overflow", "m")
	c.Put(keys[max], resp("a"))

	stats := c.Stats()
	if stats.Total > max/2 {
		t.Fatalf("expected at most %d entries after eviction, got %d", max/2, stats.Total)
	}

	for i := 0; i < 5; i++ {
		if _, ok := c.Get(keys[i]); !ok {
			t.Errorf("frequently accessed entry %d should survive eviction", i)
		}
	}
}

func TestEvictionNeverExceedsBound(t *testing.T) {
	const max = 6
	c := New(time.Hour, max)

	for i := 0; i < 50; i++ {
		c.Put(Key(fmt.Sprintf("q%d", i), "m"), resp("a"))
		if total := c.Stats().Total; total > max {
			t.Fatalf("cache grew to %d entries, bound is %d", total, max)
		}
	}
}

func TestPutOverwritesSameKey(t *testing.T) {
	c := New(time.Hour, 10)
	k := Key("dup", "m")

	c.Put(k, resp("first"))
	c.Put(k, resp("second"))

	if stats := c.Stats(); stats.Total != 1 {
		t.Fatalf("expected 1 entry, got %d", stats.Total)
	}
	got, _ := c.Get(k)
	if got.Response != "second" {
		t.Errorf("expected overwritten value, got %q", got.Response)
	}
}

func TestClear(t *testing.T) {
	c := New(time.Hour, 10)
	c.Put(Key("a1", "m"), resp("x"))
	c.Put(Key("b1", "m"), resp("y"))

	c.Clear()

	if stats := c.Stats(); stats.Total != 0 {
		t.Errorf("expected empty cache, got %d entries", stats.Total)
	}
}

func TestSweepExpired(t *testing.T) {
	c := New(20*time.Millisecond, 10)
	c.Put(Key("old", "m"), resp("x"))
	time.Sleep(40 * time.Millisecond)
	c.Put(Key("new", "m"), resp("y"))

	// Put already sweeps, so only the fresh entry remains.
	if removed := c.SweepExpired(); removed != 0 {
		t.Errorf("expected nothing left to sweep, removed %d", removed)
	}
	if stats := c.Stats(); stats.Total != 1 || stats.Valid != 1 {
		t.Errorf("expected 1 valid entry, got %+v", stats)
	}
}
