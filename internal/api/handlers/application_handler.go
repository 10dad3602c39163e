package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/services"
	"github.com/careerlink/jobboard/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxResumeSize = 10 << 20

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Submit", "resume file is required", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxResumeSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Submit", "resume too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ApplicationHandler.Submit", "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes), don't trust the client header
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)

	// re-compose stream: head + remaining file
	r := &readJoin{a: bytes.NewReader(head), b: file}

	app, err := h.svc.Submit(c.Request.Context(), p, services.SubmitInput{
		JobID:       c.PostForm("job_id"),
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		CoverLetter: c.PostForm("cover_letter"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		ContentType: ct,
		FileSize:    fh.Size,
		Resume:      r,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application submitted",
		"application": app,
	})
}

func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	apps, err := h.svc.ListForEmployer(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListForJobSeeker(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	apps, err := h.svc.ListForApplicant(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

type UpdateStatusRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Note          string `json:"note"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), p, req.ApplicationID,
		models.ApplicationStatus(req.Status), req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}

type ScheduleInterviewRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // RFC 3339
	Location      string `json:"location"`
	Type          string `json:"type" binding:"required"`
	Notes         string `json:"notes"`
}

func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.ScheduleInterview", "invalid request body", err))
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.ScheduleInterview", "date must be RFC 3339", err))
		return
	}

	err = h.svc.ScheduleInterview(c.Request.Context(), p, req.ApplicationID, services.InterviewInput{
		Date:     date,
		Location: req.Location,
		Type:     models.InterviewType(req.Type),
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview scheduled"})
}

type SendFollowUpRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

func (h *ApplicationHandler) SendFollowUp(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req SendFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.SendFollowUp", "invalid request body", err))
		return
	}

	if err := h.svc.SendFollowUp(c.Request.Context(), p, req.ApplicationID, req.Message); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Follow-up message sent"})
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
