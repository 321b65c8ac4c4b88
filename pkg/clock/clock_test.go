package clock_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidewire/tidewire/pkg/clock"
)

var _ = Describe("Real", func() {
	It("should sleep until an absolute deadline", func() {
		c := clock.Real{}
		deadline := c.Now().Add(30 * time.Millisecond)

		Expect(c.SleepUntil(context.Background(), deadline)).To(Succeed())
		Expect(c.Now()).To(BeTemporally(">=", deadline))
	})

	It("should return at once for a deadline in the past", func() {
		c := clock.Real{}
		start := time.Now()
		Expect(c.SleepUntil(context.Background(), start.Add(-time.Second))).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", 50*time.Millisecond))
	})

	It("should stop sleeping when the context ends", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := clock.Real{}.SleepUntil(ctx, time.Now().Add(time.Hour))
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})
})

var _ = Describe("Fake", func() {
	var (
		start time.Time
		c     *clock.Fake
	)

	BeforeEach(func() {
		start = time.Unix(1000, 0)
		c = clock.NewFake(start)
	})

	It("should only move when advanced", func() {
		Expect(c.Now()).To(Equal(start))
		c.Advance(time.Second)
		Expect(c.Now()).To(Equal(start.Add(time.Second)))
		c.Set(start)
		Expect(c.Now()).To(Equal(start))
	})

	It("should wake sleepers once their deadline is reached", func() {
		woke := make(chan error, 1)
		go func() {
			woke <- c.SleepUntil(context.Background(), start.Add(10*time.Millisecond))
		}()
		Eventually(c.Sleepers, time.Second).Should(Equal(1))

		c.Advance(9 * time.Millisecond)
		Consistently(woke, 50*time.Millisecond).ShouldNot(Receive())

		c.Advance(time.Millisecond)
		Eventually(woke, time.Second).Should(Receive(BeNil()))
		Expect(c.Sleepers()).To(BeZero())
	})

	It("should forget sleepers whose context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		woke := make(chan error, 1)
		go func() {
			woke <- c.SleepUntil(ctx, start.Add(time.Hour))
		}()
		Eventually(c.Sleepers, time.Second).Should(Equal(1))

		cancel()
		Eventually(woke, time.Second).Should(Receive(MatchError(context.Canceled)))
		Expect(c.Sleepers()).To(BeZero())
	})

	It("should report the earliest pending deadline", func() {
		_, ok := c.NextDeadline()
		Expect(ok).To(BeFalse())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		for _, d := range []time.Duration{30 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond} {
			go func() {
				_ = c.SleepUntil(ctx, start.Add(d))
			}()
		}
		Eventually(c.Sleepers, time.Second).Should(Equal(3))

		next, ok := c.NextDeadline()
		Expect(ok).To(BeTrue())
		Expect(next).To(Equal(start.Add(10 * time.Millisecond)))

		c.Advance(15 * time.Millisecond)
		Eventually(c.Sleepers, time.Second).Should(Equal(2))
		next, _ = c.NextDeadline()
		Expect(next).To(Equal(start.Add(20 * time.Millisecond)))
	})
})
