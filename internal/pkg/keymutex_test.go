package pkg

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 同一个 key 上的临界区必须串行
func TestKeyMutexSerializesSameKey(t *testing.T) {
	km := NewKeyMutex()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

// 不同 key 之间不竞争：持有 key A 时仍能立即拿到 key B
func TestKeyMutexIndependentKeys(t *testing.T) {
	km := NewKeyMutex()

	unlockA := km.Lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock(2)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestKeyMutexUnlockReleases(t *testing.T) {
	km := NewKeyMutex()

	unlock := km.Lock(3)
	unlock()

	done := make(chan struct{})
	go func() {
		u := km.Lock(3)
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released")
	}
}
