package keylock

import (
	"sync"
	"testing"
	"time"
)

func TestLockSameKeySerializes(t *testing.T) {
	var (
		l       Locker[int64]
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock := l.Lock(1)
			defer unlock()

			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}

	wg.Wait()

	if counter != 100 {
		t.Errorf("counter=%d, want 100", counter)
	}

	if got := l.Len(); got != 0 {
		t.Errorf("l.Len()=%d, want 0", got)
	}
}

func TestLockDifferentKeysDoNotBlock(t *testing.T) {
	var l Locker[int64]

	unlock1 := l.Lock(1)
	defer unlock1()

	done := make(chan struct{})

	go func() {
		unlock2 := l.Lock(2)
		unlock2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("l.Lock(2) blocked while key 1 was held")
	}
}
