package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vietddude/employees/internal/core/domain"
	"github.com/vietddude/employees/internal/infra/remote"
)

// Directory is the set of employee operations served over HTTP.
type Directory interface {
	ListAll(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (domain.Employee, error)
	SearchByName(ctx context.Context, term string) ([]domain.Employee, error)
	HighestSalary(ctx context.Context) (int, error)
	TopTenEarners(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error)
	DeleteByID(ctx context.Context, id string) (string, error)
}

// EmployeeHandler serves /api/v1/employee.
type EmployeeHandler struct {
	dir Directory
	log *slog.Logger
}

func NewEmployeeHandler(dir Directory, log *slog.Logger) *EmployeeHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EmployeeHandler{dir: dir, log: log.With("component", "api")}
}

func (h *EmployeeHandler) ListAll(c *gin.Context) {
	employees, err := h.dir.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Search(c *gin.Context) {
	employees, err := h.dir.SearchByName(c.Request.Context(), c.Param("term"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	employee, err := h.dir.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) HighestSalary(c *gin.Context) {
	salary, err := h.dir.HighestSalary(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, salary)
}

func (h *EmployeeHandler) TopTenEarners(c *gin.Context) {
	names, err := h.dir.TopTenEarners(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req domain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid := domain.NewInvalidRequest([]string{msgMalformedReq})
		invalid.Err = err
		respondError(c, h.log, invalid)
		return
	}

	employee, err := h.dir.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) DeleteByID(c *gin.Context) {
	name, err := h.dir.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, name)
}

// HealthHandler reports liveness and the remote monitor snapshot.
type HealthHandler struct {
	remoteName string
	monitor    *remote.Monitor
}

func NewHealthHandler(remoteName string, monitor *remote.Monitor) *HealthHandler {
	return &HealthHandler{remoteName: remoteName, monitor: monitor}
}

// Health always answers 200 while the process is serving; a throttled or
// degraded remote is reported, not treated as down.
func (h *HealthHandler) Health(c *gin.Context) {
	status := remote.StatusHealthy
	if h.monitor != nil {
		status = h.monitor.CheckStatus()
	}
	c.JSON(http.StatusOK, gin.H{"status": status.String()})
}

func (h *HealthHandler) Detailed(c *gin.Context) {
	var stats remote.MonitorStats
	if h.monitor != nil {
		stats = h.monitor.GetStats()
	}
	c.JSON(http.StatusOK, gin.H{
		"remote": gin.H{
			"name":  h.remoteName,
			"stats": stats,
		},
	})
}
