package repository

import (
	"context"

	"patientor/internal/models"
)

// DefaultDiagnoses is the ICD-10 reference set loaded into an empty store.
var DefaultDiagnoses = []models.Diagnosis{
	{Code: "M24.2", Name: "Disorder of ligament", Latin: "Morbositas ligamenti"},
	{Code: "M51.2", Name: "Other specified intervertebral disc displacement", Latin: "Alia dislocatio disci intervertebralis specificata"},
	{Code: "S03.5", Name: "Sprain and strain of joints and ligaments of other and unspecified parts of head", Latin: "Distorsio et/sive distensio articulationum et/sive ligamentorum partium aliarum sive non specificatarum capitis"},
	{Code: "J10.1", Name: "Influenza with other respiratory manifestations, other influenza virus codeidentified", Latin: "Influenza cum aliis manifestationibus respiratoriis ab agente virali codeidentificato"},
	{Code: "J06.9", Name: "Acute upper respiratory infection, unspecified", Latin: "Infectio acuta respiratoria superior non specificata"},
	{Code: "Z57.1", Name: "Occupational exposure to radiation"},
	{Code: "N30.0", Name: "Acute cystitis", Latin: "Cystitis acuta"},
	{Code: "H54.7", Name: "Unspecified visual loss", Latin: "Amblyopia NAS"},
	{Code: "J03.0", Name: "Streptococcal tonsillitis", Latin: "Tonsillitis (palatina) streptococcica"},
	{Code: "L60.1", Name: "Onycholysis", Latin: "Onycholysis"},
	{Code: "Z74.3", Name: "Need for continuous supervision"},
	{Code: "L20", Name: "Atopic dermatitis", Latin: "Atopic dermatitis"},
	{Code: "F43.2", Name: "Adjustment disorders", Latin: "Perturbationes adaptationis"},
	{Code: "S62.5", Name: "Fracture of thumb", Latin: "Fractura [ossis/ossium] pollicis"},
	{Code: "H35.29", Name: "Other proliferative retinopathy", Latin: "Alia retinopathia proliferativa"},
}

// SeedDiagnoses loads DefaultDiagnoses when the repository has none.
func SeedDiagnoses(ctx context.Context, repo Repository) (bool, error) {
	existing, err := repo.ListDiagnoses(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, repo.SaveDiagnoses(ctx, DefaultDiagnoses)
}
