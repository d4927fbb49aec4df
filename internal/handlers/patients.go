package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"patientor/internal/middleware"
	"patientor/internal/models"
	"patientor/internal/repository"
	"patientor/internal/utils"
)

// PatientHandler handles patient and entry requests.
type PatientHandler struct {
	Repo   repository.Repository
	Logger zerolog.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(repo repository.Repository, logger zerolog.Logger) *PatientHandler {
	return &PatientHandler{Repo: repo, Logger: logger}
}

// GetPatients lists patients without their ssn or entries.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	patients, err := h.Repo.ListPatients(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list patients")
		utils.InternalServerError(c, "Failed to fetch patients")
		return
	}

	out := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.NonSensitive())
	}
	utils.OK(c, out)
}

// GetPatientByID returns one patient with all entries.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id := c.Param("id")
	patient, err := h.Repo.GetPatient(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.NotFound(c, "Patient not found")
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("patient_id", id).Msg("get patient")
		utils.InternalServerError(c, "Failed to fetch patient")
		return
	}
	utils.OK(c, patient)
}

// CreatePatient adds a patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req models.NewPatient
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Repo.CreatePatient(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error().Err(err).Msg("create patient")
		utils.InternalServerError(c, "Failed to create patient")
		return
	}
	h.Logger.Info().
		Str("patient_id", patient.ID).
		Str("subject", caller(c)).
		Msg("patient created")
	utils.Created(c, patient)
}

// AddEntry appends an entry to a patient and returns the updated patient.
// Only the payload fields relevant to its type are read.
func (h *PatientHandler) AddEntry(c *gin.Context) {
	id := c.Param("id")

	var req models.EntryPayload
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := req.ToEntry("")
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	patient, err := h.Repo.AddEntry(c.Request.Context(), id, entry)
	if errors.Is(err, repository.ErrNotFound) {
		utils.NotFound(c, "Patient not found")
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("patient_id", id).Msg("add entry")
		utils.InternalServerError(c, "Failed to add entry")
		return
	}
	h.Logger.Info().
		Str("patient_id", id).
		Str("entry_id", entry.Base().ID).
		Str("type", string(entry.Type())).
		Str("subject", caller(c)).
		Msg("entry added")
	utils.OK(c, patient)
}

// caller is the token subject, empty when auth is disabled.
func caller(c *gin.Context) string {
	subject, _ := middleware.GetSubjectFromContext(c)
	return subject
}
