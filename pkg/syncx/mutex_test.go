package syncx_test

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidewire/tidewire/pkg/executor"
	"github.com/tidewire/tidewire/pkg/syncx"
)

var _ = Describe("Mutex", func() {
	var mu *syncx.Mutex

	BeforeEach(func() {
		mu = &syncx.Mutex{}
	})

	It("should let exactly one of two racers take the flag", func() {
		const trials = 10000
		for i := 0; i < trials; i++ {
			var (
				taken bool
				x, y  int
				wg    sync.WaitGroup
			)
			race := func(out *int) {
				defer wg.Done()
				mu.Lock()
				if !taken {
					taken = true
					*out = 1
				}
				mu.Unlock()
			}
			wg.Add(2)
			go race(&x)
			go race(&y)
			wg.Wait()

			Expect(x + y).To(Equal(1))
		}
	})

	It("should behave the same when one racer is locked to its OS thread", func() {
		const trials = 2000
		for i := 0; i < trials; i++ {
			var (
				taken bool
				x, y  int
				wg    sync.WaitGroup
			)
			race := func(out *int, pinned bool) {
				defer wg.Done()
				if pinned {
					runtime.LockOSThread()
					defer runtime.UnlockOSThread()
				}
				mu.Lock()
				if !taken {
					taken = true
					*out = 1
				}
				mu.Unlock()
			}
			wg.Add(2)
			go race(&x, true)
			go race(&y, false)
			wg.Wait()

			Expect(x + y).To(Equal(1))
		}

		// a pinned waiter parks until an unpinned holder hands the lock over
		mu.Lock()
		acquired := make(chan struct{})
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			mu.Lock()
			close(acquired)
			mu.Unlock()
		}()
		Consistently(acquired, 50*time.Millisecond).ShouldNot(BeClosed())
		mu.Unlock()
		Eventually(acquired, time.Second).Should(BeClosed())
	})

	It("should never overlap critical sections posted to a multi-worker executor", func() {
		const n = 10000
		pool := executor.NewPool("mutex-test", 8)
		defer pool.Close()

		var (
			active   atomic.Bool
			overlaps atomic.Int32
			sum      int
			wg       sync.WaitGroup
		)
		for i := 1; i <= n; i++ {
			wg.Add(1)
			Expect(pool.Execute(func(ctx context.Context) {
				defer wg.Done()
				g := mu.ScopedLock()
				defer g.Unlock()

				if active.Swap(true) {
					overlaps.Add(1)
				}
				sum += i
				active.Store(false)
			})).To(Succeed())
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		Eventually(done, 10*time.Second).Should(BeClosed())

		Expect(overlaps.Load()).To(BeZero())
		Expect(sum).To(Equal(n * (n + 1) / 2))
	})

	It("should hand the lock to a blocked acquirer on Unlock", func() {
		mu.Lock()
		acquired := make(chan struct{})
		go func() {
			mu.Lock()
			close(acquired)
		}()
		Consistently(acquired, 50*time.Millisecond).ShouldNot(BeClosed())

		mu.Unlock()
		Eventually(acquired, time.Second).Should(BeClosed())
		Expect(mu.TryLock()).To(BeFalse())
		mu.Unlock()
		Expect(mu.TryLock()).To(BeTrue())
		mu.Unlock()
	})

	It("should panic on unlock of an unlocked mutex", func() {
		Expect(func() { mu.Unlock() }).To(Panic())
		// still usable afterwards
		Expect(mu.TryLock()).To(BeTrue())
		mu.Unlock()
	})

	It("should give up on context cancellation without holding the lock", func() {
		mu.Lock()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		Expect(mu.LockContext(ctx)).To(MatchError(context.DeadlineExceeded))

		mu.Unlock()
		Expect(mu.TryLock()).To(BeTrue())
		mu.Unlock()
	})

	It("should pass the lock on when a cancelled waiter is skipped", func() {
		mu.Lock()

		ctx, cancel := context.WithCancel(context.Background())
		cancelled := make(chan error, 1)
		go func() { cancelled <- mu.LockContext(ctx) }()

		acquired := make(chan struct{})
		go func() {
			mu.Lock()
			close(acquired)
		}()
		Consistently(acquired, 50*time.Millisecond).ShouldNot(BeClosed())

		cancel()
		Eventually(cancelled, time.Second).Should(Receive(MatchError(context.Canceled)))

		mu.Unlock()
		Eventually(acquired, time.Second).Should(BeClosed())
		mu.Unlock()
	})

	It("should reject an already cancelled context when contended", func() {
		mu.Lock()
		defer mu.Unlock()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(mu.LockContext(ctx)).To(MatchError(context.Canceled))
	})

	Describe("ScopedLock", func() {
		It("should release on every exit path", func() {
			early := func() {
				g := mu.ScopedLock()
				defer g.Unlock()
				if g.Owns() {
					return
				}
			}
			early()
			Expect(mu.TryLock()).To(BeTrue())
			mu.Unlock()

			panicking := func() {
				g := mu.ScopedLock()
				defer g.Unlock()
				panic("boom")
			}
			Expect(panicking).To(Panic())
			Expect(mu.TryLock()).To(BeTrue())
			mu.Unlock()
		})

		It("should tolerate an explicit release before the deferred one", func() {
			func() {
				g := mu.ScopedLock()
				defer g.Unlock()
				g.Unlock()
				Expect(g.Owns()).To(BeFalse())
				Expect(mu.TryLock()).To(BeTrue())
				mu.Unlock()
			}()
			Expect(mu.TryLock()).To(BeTrue())
			mu.Unlock()
		})

		It("should release on panic through WithLock", func() {
			Expect(func() {
				mu.WithLock(func() { panic("boom") })
			}).To(Panic())
			Expect(mu.TryLock()).To(BeTrue())
			mu.Unlock()
		})
	})
})
