package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/tidewire/tidewire/api/v1"
	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/handlers"
	"github.com/tidewire/tidewire/internal/models"
	"github.com/tidewire/tidewire/internal/server"
	"github.com/tidewire/tidewire/internal/services"
	"github.com/tidewire/tidewire/internal/store"
	"github.com/tidewire/tidewire/internal/store/migrations"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

var _ = Describe("Handler", func() {
	var (
		ctx     context.Context
		db      *sql.DB
		s       *store.Store
		rt      *services.Runtime
		journal *services.Journal
		router  http.Handler
		t0      time.Time
	)

	get := func(path string, out any) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if out != nil {
			Expect(json.Unmarshal(rec.Body.Bytes(), out)).To(Succeed())
		}
		return rec.Code
	}

	newRouter := func(j *services.Journal) http.Handler {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		h := handlers.New(rt, j)
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			handlers.RegisterHandlers(router, h)
		})
		Expect(err).NotTo(HaveOccurred())
		return srv.Handler()
	}

	insert := func(worker string, offset time.Duration, panicked bool) models.Run {
		run := models.Run{
			ID:          uuid.New(),
			Wheel:       "main",
			Worker:      worker,
			ScheduledAt: t0.Add(offset),
			StartedAt:   t0.Add(offset + 2*time.Millisecond),
			Duration:    5 * time.Millisecond,
			Panicked:    panicked,
		}
		Expect(s.Runs().Insert(ctx, run)).To(Succeed())
		return run
	}

	BeforeEach(func() {
		ctx = context.Background()
		t0 = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		s = store.NewStore(db)

		mgr, err := services.NewExecutorManager([]config.Executor{
			{Name: "wheel", Workers: 1},
			{Name: "journal", Workers: 1},
		})
		Expect(err).NotTo(HaveOccurred())
		ex, err := mgr.Get("journal")
		Expect(err).NotTo(HaveOccurred())
		journal = services.NewJournal(s.Runs(), ex)

		rt = services.NewRuntime(mgr, timewheel.WithName("main"))
		workers, err := services.BuildWorkers([]config.Worker{
			{Name: "beat", Kind: "heartbeat", Period: time.Hour},
		}, journal, time.Hour)
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Start("wheel", workers)).To(Succeed())

		router = newRouter(journal)
	})

	AfterEach(func() {
		rt.Stop()
		db.Close()
	})

	Describe("runtime endpoints", func() {
		It("should report health", func() {
			var health v1.Health
			Expect(get("/api/v1/health", &health)).To(Equal(http.StatusOK))
			Expect(health.Status).To(Equal("ok"))
			Expect(health.Wheel.Name).To(Equal("main"))
			Expect(health.Wheel.State).To(Equal("running"))
			Expect(health.Wheel.Workers).To(Equal(1))
			Expect(health.Wheel.Id).NotTo(BeEmpty())
		})

		It("should list executors", func() {
			var executors []v1.Executor
			Expect(get("/api/v1/executors", &executors)).To(Equal(http.StatusOK))
			Expect(executors).To(Equal([]v1.Executor{
				{Name: "journal", Workers: 1},
				{Name: "wheel", Workers: 1},
			}))
		})

		It("should list workers", func() {
			Eventually(func() uint64 {
				var workers []v1.Worker
				Expect(get("/api/v1/workers", &workers)).To(Equal(http.StatusOK))
				Expect(workers).To(HaveLen(1))
				return workers[0].Runs
			}, time.Second).Should(Equal(uint64(1)))

			var w v1.Worker
			Expect(get("/api/v1/workers/beat", &w)).To(Equal(http.StatusOK))
			Expect(w.Period).To(Equal("1h0m0s"))
			Expect(w.LastRun).NotTo(BeNil())
			Expect(w.NextWake).NotTo(BeNil())
		})

		It("should return 404 for an unknown worker", func() {
			var e v1.Error
			Expect(get("/api/v1/workers/ghost", &e)).To(Equal(http.StatusNotFound))
			Expect(e.Error).To(ContainSubstring("ghost"))
		})

		It("should return a JSON 404 outside the API", func() {
			var e v1.Error
			Expect(get("/nowhere", &e)).To(Equal(http.StatusNotFound))
			Expect(e.Error).To(Equal("not found"))
		})
	})

	Describe("run endpoints", func() {
		It("should page through runs newest first", func() {
			for i := range 25 {
				insert("A", time.Duration(i)*time.Second, false)
			}
			insert("B", 0, true)

			var page v1.RunListResponse
			Expect(get("/api/v1/runs?worker=A&page=2&pageSize=10", &page)).To(Equal(http.StatusOK))
			Expect(page.Page).To(Equal(2))
			Expect(page.PageCount).To(Equal(3))
			Expect(page.Total).To(Equal(25))
			Expect(page.Runs).To(HaveLen(10))
			Expect(page.Runs[0].StartedAt).To(BeTemporally("==", t0.Add(14*time.Second+2*time.Millisecond)))
			Expect(page.Runs[0].DurationMs).To(Equal(5.0))
			Expect(page.Runs[0].LatenessMs).To(Equal(2.0))
		})

		It("should cap huge page numbers instead of overflowing the offset", func() {
			insert("A", 0, false)

			var page v1.RunListResponse
			Expect(get("/api/v1/runs?page=9223372036854775807&pageSize=100", &page)).To(Equal(http.StatusOK))
			Expect(page.Page).To(Equal(1_000_000))
			Expect(page.Total).To(Equal(1))
			Expect(page.Runs).To(BeEmpty())
		})

		It("should filter panicked runs and cap the page size", func() {
			insert("A", 0, false)
			insert("B", 0, true)

			var page v1.RunListResponse
			Expect(get("/api/v1/runs?panicked=true&pageSize=1000", &page)).To(Equal(http.StatusOK))
			Expect(page.Total).To(Equal(1))
			Expect(page.Runs[0].Worker).To(Equal("B"))
			Expect(page.Runs[0].Panicked).To(BeTrue())

			Expect(get("/api/v1/runs?panicked=maybe", nil)).To(Equal(http.StatusBadRequest))
		})

		It("should return an empty first page without runs", func() {
			var page v1.RunListResponse
			Expect(get("/api/v1/runs?worker=nobody", &page)).To(Equal(http.StatusOK))
			Expect(page.PageCount).To(Equal(1))
			Expect(page.Runs).To(BeEmpty())
		})

		It("should get a run by id", func() {
			run := insert("A", 0, false)

			var got v1.Run
			Expect(get("/api/v1/runs/"+run.ID.String(), &got)).To(Equal(http.StatusOK))
			Expect(got.Id).To(Equal(run.ID.String()))
			Expect(got.Worker).To(Equal("A"))

			Expect(get("/api/v1/runs/"+uuid.NewString(), nil)).To(Equal(http.StatusNotFound))
			Expect(get("/api/v1/runs/not-a-uuid", nil)).To(Equal(http.StatusBadRequest))
		})

		It("should summarise runs per worker", func() {
			insert("A", 0, false)
			insert("A", time.Second, true)
			insert("B", 0, false)

			var summaries []v1.RunSummary
			Expect(get("/api/v1/runs/summary?worker=A", &summaries)).To(Equal(http.StatusOK))
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].Runs).To(Equal(2))
			Expect(summaries[0].Panics).To(Equal(1))
			Expect(summaries[0].AvgDurationMs).To(Equal(5.0))
			Expect(summaries[0].LastRun).NotTo(BeNil())
		})

		It("should answer 503 when the journal is disabled", func() {
			router = newRouter(nil)

			Expect(get("/api/v1/runs", nil)).To(Equal(http.StatusServiceUnavailable))
			Expect(get("/api/v1/runs/summary", nil)).To(Equal(http.StatusServiceUnavailable))
			Expect(get("/api/v1/health", nil)).To(Equal(http.StatusOK))
		})
	})
})
