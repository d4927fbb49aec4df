package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"patientor/internal/models"
)

// GormRepository stores records in MySQL through gorm.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var records []models.PatientRecord
	if err := r.DB.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	out := make([]models.Patient, 0, len(records))
	for _, rec := range records {
		p, err := rec.ToPatient()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *GormRepository) GetPatient(ctx context.Context, id string) (models.Patient, error) {
	return r.getPatient(r.DB.WithContext(ctx), id)
}

func (r *GormRepository) getPatient(db *gorm.DB, id string) (models.Patient, error) {
	var rec models.PatientRecord
	err := db.Preload("Entries", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc")
	}).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Patient{}, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Patient{}, fmt.Errorf("get patient %s: %w", id, err)
	}
	return rec.ToPatient()
}

func (r *GormRepository) CreatePatient(ctx context.Context, np models.NewPatient) (models.Patient, error) {
	rec := models.NewPatientRecord(np)
	if err := r.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Patient{}, fmt.Errorf("create patient: %w", err)
	}
	return rec.ToPatient()
}

func (r *GormRepository) AddEntry(ctx context.Context, patientID string, entry models.Entry) (models.Patient, error) {
	var updated models.Patient
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PatientRecord{}).Where("id = ?", patientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("patient %s: %w", patientID, ErrNotFound)
		}

		rec := models.NewEntryRecord(patientID, entry)
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		entry.Base().ID = rec.ID

		p, err := r.getPatient(tx, patientID)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return models.Patient{}, err
	}
	return updated, nil
}

func (r *GormRepository) ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error) {
	var records []models.DiagnosisRecord
	if err := r.DB.WithContext(ctx).Order("code asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	out := make([]models.Diagnosis, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToDiagnosis())
	}
	return out, nil
}

func (r *GormRepository) SaveDiagnoses(ctx context.Context, diagnoses []models.Diagnosis) error {
	if len(diagnoses) == 0 {
		return nil
	}
	records := make([]models.DiagnosisRecord, 0, len(diagnoses))
	for _, d := range diagnoses {
		records = append(records, models.DiagnosisRecord{Code: d.Code, Name: d.Name, Latin: d.Latin})
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
	if err != nil {
		return fmt.Errorf("save diagnoses: %w", err)
	}
	return nil
}
