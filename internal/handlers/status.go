package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tidewire/tidewire/api/v1"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
)

// GetHealth reports the time wheel state
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	var wheel v1.Wheel
	wheel.FromModel(h.runtime.Wheel())

	status := "ok"
	if wheel.State == "stopped" {
		status = "stopped"
	}
	c.JSON(http.StatusOK, v1.Health{Status: status, Wheel: wheel})
}

// ListExecutors returns the executors and their queue depth
// (GET /executors)
func (h *Handler) ListExecutors(c *gin.Context) {
	executors := h.runtime.Executors()
	out := make([]v1.Executor, 0, len(executors))
	for _, e := range executors {
		out = append(out, v1.NewExecutorFromModel(e))
	}
	c.JSON(http.StatusOK, out)
}

// ListWorkers returns live statistics for every worker
// (GET /workers)
func (h *Handler) ListWorkers(c *gin.Context) {
	workers := h.runtime.Workers()
	out := make([]v1.Worker, 0, len(workers))
	for _, w := range workers {
		out = append(out, v1.NewWorkerFromModel(w))
	}
	c.JSON(http.StatusOK, out)
}

// GetWorker returns live statistics for one worker
// (GET /workers/{name})
func (h *Handler) GetWorker(c *gin.Context) {
	w, err := h.runtime.Worker(c.Param("name"))
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to get worker"})
		return
	}
	c.JSON(http.StatusOK, v1.NewWorkerFromModel(*w))
}
