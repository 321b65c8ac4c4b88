package services_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/services"
	"github.com/tidewire/tidewire/internal/store"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

var _ = Describe("Runtime", func() {
	var (
		ctx context.Context
		db  *sql.DB
		s   *store.Store
		rt  *services.Runtime
	)

	executors := []config.Executor{
		{Name: "wheel", Workers: 1},
		{Name: "journal", Workers: 2, QueueSize: 128},
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, s = newTestStore(ctx)
	})

	AfterEach(func() {
		if rt != nil {
			rt.Stop()
		}
		db.Close()
	})

	It("should run configured workers and journal every run", func() {
		mgr, err := services.NewExecutorManager(executors)
		Expect(err).NotTo(HaveOccurred())
		ex, err := mgr.Get("journal")
		Expect(err).NotTo(HaveOccurred())
		journal := services.NewJournal(s.Runs(), ex)

		rt = services.NewRuntime(mgr, timewheel.WithName("main"), timewheel.WithRunObserver(journal.Observe))
		workers, err := services.BuildWorkers([]config.Worker{
			{Name: "beat", Kind: "heartbeat", Period: 5 * time.Millisecond},
			{Name: "busy", Kind: "sleep", Period: 10 * time.Millisecond, Work: time.Millisecond},
			{Name: "janitor", Kind: "prune", Period: time.Hour},
		}, journal, time.Hour)
		Expect(err).NotTo(HaveOccurred())

		Expect(rt.Start("wheel", workers)).To(Succeed())
		Expect(rt.Wheel().State).To(Equal("running"))
		Expect(rt.Wheel().Workers).To(Equal(3))

		Eventually(func() uint64 {
			w, err := rt.Worker("beat")
			Expect(err).NotTo(HaveOccurred())
			return w.Runs
		}, 2*time.Second).Should(BeNumerically(">=", 5))

		Eventually(func() int {
			n, err := s.Runs().Count(ctx, store.ByWorkers("busy"))
			Expect(err).NotTo(HaveOccurred())
			return n
		}, 2*time.Second).Should(BeNumerically(">=", 2))

		statuses := rt.Workers()
		Expect(statuses).To(HaveLen(3))
		Expect(statuses[0].Name).To(Equal("beat"))
		Expect(statuses[0].Period).To(Equal(5 * time.Millisecond))
		Expect(statuses[2].Runs).To(Equal(uint64(1)))

		Expect(rt.Executors()).To(ConsistOf(
			HaveField("Name", "journal"),
			HaveField("Name", "wheel"),
		))
		Expect(rt.Executors()[0].Workers).To(Equal(2))

		rt.Stop()
		Expect(rt.Wheel().State).To(Equal("stopped"))
		Expect(rt.Wheel().Workers).To(BeZero())
		rt = nil
	})

	It("should leave the wheel not started without workers", func() {
		mgr, err := services.NewExecutorManager(executors)
		Expect(err).NotTo(HaveOccurred())
		rt = services.NewRuntime(mgr)

		Expect(rt.Start("wheel", nil)).To(Succeed())
		Expect(rt.Wheel().State).To(Equal("not-started"))
	})

	It("should fail for an unknown executor", func() {
		mgr, err := services.NewExecutorManager(executors)
		Expect(err).NotTo(HaveOccurred())
		rt = services.NewRuntime(mgr)

		err = rt.Start("gpu", nil)
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should report unknown workers", func() {
		mgr, err := services.NewExecutorManager(executors)
		Expect(err).NotTo(HaveOccurred())
		rt = services.NewRuntime(mgr)

		_, err = rt.Worker("ghost")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should refuse duplicate executor names", func() {
		_, err := services.NewExecutorManager([]config.Executor{{Name: "a", Workers: 1}, {Name: "a", Workers: 1}})
		Expect(srvErrors.IsDuplicateResourceError(err)).To(BeTrue())
	})
})

var _ = Describe("BuildWorkers", func() {
	It("should build one worker per definition", func() {
		workers, err := services.BuildWorkers([]config.Worker{
			{Name: "a", Kind: "heartbeat", Period: time.Second},
			{Name: "b", Kind: "sleep", Period: 0},
		}, nil, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(workers).To(HaveLen(2))
		Expect(workers[0].Name()).To(Equal("a"))
		Expect(workers[0].Period()).To(Equal(time.Second))
		Expect(workers[1].Period()).To(BeZero())
	})

	It("should refuse a prune worker without journal", func() {
		_, err := services.BuildWorkers([]config.Worker{{Name: "p", Kind: "prune", Period: time.Hour}}, nil, time.Hour)
		Expect(err).To(MatchError(ContainSubstring("prune needs the run journal")))
	})

	It("should refuse unknown kinds", func() {
		_, err := services.BuildWorkers([]config.Worker{{Name: "x", Kind: "cron"}}, nil, 0)
		Expect(err).To(MatchError(ContainSubstring("unknown worker kind")))
	})
})

var _ = Describe("Simulate", func() {
	It("should predict the firing sequence", func() {
		runs, err := services.Simulate([]config.Worker{
			{Name: "A", Period: 10 * time.Millisecond},
			{Name: "B", Period: 20 * time.Millisecond},
			{Name: "C", Period: 30 * time.Millisecond},
		}, 60*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())

		at := func(worker string, ms int) services.SimulatedRun {
			return services.SimulatedRun{Worker: worker, At: time.Duration(ms) * time.Millisecond}
		}
		Expect(runs).To(Equal([]services.SimulatedRun{
			at("A", 0), at("B", 0), at("C", 0),
			at("A", 10),
			at("A", 20), at("B", 20),
			at("A", 30), at("C", 30),
			at("A", 40), at("B", 40),
			at("A", 50),
			at("A", 60), at("B", 60), at("C", 60),
		}))
	})

	It("should run one-shot workers once", func() {
		runs, err := services.Simulate([]config.Worker{{Name: "once"}}, time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(Equal([]services.SimulatedRun{{Worker: "once"}}))
	})

	It("should return nothing for an empty table", func() {
		runs, err := services.Simulate(nil, time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(BeEmpty())
	})
})
