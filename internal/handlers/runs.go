package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/tidewire/tidewire/api/v1"
	"github.com/tidewire/tidewire/internal/services"
	"github.com/tidewire/tidewire/internal/util"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = 1_000_000
)

// ListRuns returns journaled runs, newest first, with filtering and pagination
// (GET /runs?worker=&panicked=&page=&pageSize=)
func (h *Handler) ListRuns(c *gin.Context) {
	if !h.journalEnabled(c) {
		return
	}

	// Parse pagination
	page := util.Clamp(queryInt(c, "page", 1), 1, maxPage)
	pageSize := queryInt(c, "pageSize", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = util.Clamp(pageSize, 1, maxPageSize)

	params := services.RunListParams{
		Workers: c.QueryArray("worker"),
		Wheel:   c.Query("wheel"),
		Limit:   uint64(pageSize),
		Offset:  uint64(page-1) * uint64(pageSize),
	}
	if raw, ok := c.GetQuery("panicked"); ok {
		panicked, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid panicked value"})
			return
		}
		params.Panicked = util.BoolPtr(panicked)
	}

	result, err := h.journal.List(c.Request.Context(), params)
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to list runs"})
		return
	}

	runs := make([]v1.Run, 0, len(result.Runs))
	for _, r := range result.Runs {
		runs = append(runs, v1.NewRunFromModel(r))
	}

	c.JSON(http.StatusOK, v1.RunListResponse{
		Page:      page,
		PageCount: util.PageCount(result.Total, pageSize),
		Total:     result.Total,
		Runs:      runs,
	})
}

// GetRun returns one journaled run
// (GET /runs/{id})
func (h *Handler) GetRun(c *gin.Context) {
	if !h.journalEnabled(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid run id"})
		return
	}

	run, err := h.journal.Get(c.Request.Context(), id)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.Error{Error: err.Error()})
			return
		}
		zap.S().Named("run_handler").Errorw("failed to get run", "run_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to get run"})
		return
	}
	c.JSON(http.StatusOK, v1.NewRunFromModel(*run))
}

// GetRunSummary returns per worker run statistics
// (GET /runs/summary?worker=)
func (h *Handler) GetRunSummary(c *gin.Context) {
	if !h.journalEnabled(c) {
		return
	}

	summaries, err := h.journal.Summary(c.Request.Context(), c.QueryArray("worker")...)
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to summarise runs", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to summarise runs"})
		return
	}

	out := make([]v1.RunSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, v1.NewRunSummaryFromModel(s))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) journalEnabled(c *gin.Context) bool {
	if h.journal == nil {
		c.JSON(http.StatusServiceUnavailable, v1.Error{Error: "run journal disabled"})
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
