package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pushcron/internal/domain/model"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 500
)

// JobLister exposes the scheduler's upcoming fire times.
type JobLister interface {
	Upcoming() []model.Upcoming
}

// RunLister exposes the delivery ledger.
type RunLister interface {
	Recent(ctx context.Context, limit int) ([]model.Run, error)
}

type handler struct {
	jobs JobLister
	runs RunLister
}

// NewRouter builds the health and inspection API.
func NewRouter(jobs JobLister, runs RunLister) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	h := &handler{jobs: jobs, runs: runs}
	router.GET("/healthz", healthz)
	router.GET("/jobs", h.listJobs)
	router.GET("/runs", h.listRuns)
	return router
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.jobs.Upcoming()})
}

func (h *handler) listRuns(c *gin.Context) {
	limit := defaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRunLimit)
	}

	if h.runs == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []model.Run{}})
		return
	}

	runs, err := h.runs.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
