package handlers

import (
	"net/http"
	"strconv"

	"github.com/careerlink/jobboard/internal/services"
	"github.com/careerlink/jobboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type PostJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func (h *JobHandler) Post(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Post", "invalid request body", err))
		return
	}

	job, err := h.svc.Post(c.Request.Context(), p, services.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job posted", "job": job})
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	jobs, err := h.svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) ListMine(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.svc.ListMine(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
