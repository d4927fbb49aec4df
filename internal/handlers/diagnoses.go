package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"patientor/internal/repository"
	"patientor/internal/utils"
)

// DiagnosisHandler serves the diagnosis reference data.
type DiagnosisHandler struct {
	Repo   repository.Repository
	Logger zerolog.Logger
}

func NewDiagnosisHandler(repo repository.Repository, logger zerolog.Logger) *DiagnosisHandler {
	return &DiagnosisHandler{Repo: repo, Logger: logger}
}

// GetDiagnoses lists every diagnosis.
func (h *DiagnosisHandler) GetDiagnoses(c *gin.Context) {
	diagnoses, err := h.Repo.ListDiagnoses(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list diagnoses")
		utils.InternalServerError(c, "Failed to fetch diagnoses")
		return
	}
	utils.OK(c, diagnoses)
}

// Ping is the liveness probe.
func Ping(c *gin.Context) {
	c.String(200, "pong")
}
