package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"patientor/internal/config"
	"patientor/internal/models"
	"patientor/internal/repository"
	"patientor/internal/routes"
	"patientor/internal/utils"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func startAPI(t *testing.T) (string, *repository.MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	repo := repository.NewMemoryRepository()
	if _, err := repository.SeedDiagnoses(context.Background(), repo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router, err := routes.NewRouter(repo, &config.Config{Origin: "http://localhost:3000"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL + "/api", repo
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("LOG_LEVEL", "error")

	out, _, err := run(t, "token", "--subject", "house", "--role", "clinician")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	claims, err := utils.ValidateToken(strings.TrimSpace(out), "cli-secret")
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != "house" || claims.Role != utils.RoleClinician {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, _, err := run(t, "token", "--subject", "house", "--role", "admin"); err == nil {
		t.Error("expected unknown role to be rejected")
	}
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")
	if _, _, err := run(t, "token", "--subject", "house"); err == nil {
		t.Error("expected error without JWT_SECRET")
	}
}

func TestPatientWorkflow(t *testing.T) {
	api, repo := startAPI(t)

	out, _, err := run(t, "--api", api, "ping")
	if err != nil || strings.TrimSpace(out) != "pong" {
		t.Fatalf("ping: %q %v", out, err)
	}

	_, _, err = run(t, "--api", api, "patients", "add",
		"--name", "Martin Riggs", "--date-of-birth", "1979-01-30",
		"--ssn", "300179-77A", "--gender", "male", "--occupation", "Cop")
	if err != nil {
		t.Fatalf("add patient: %v", err)
	}
	patients, _ := repo.ListPatients(context.Background())
	if len(patients) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(patients))
	}
	id := patients[0].ID

	out, _, err = run(t, "--api", api, "patients", "list")
	if err != nil || !strings.Contains(out, "Martin Riggs") {
		t.Fatalf("list: %q %v", out, err)
	}

	out, _, err = run(t, "--api", api, "entries", "add", id,
		"--type", "HealthCheck", "--date", "2024-03-01", "--description", "Annual check",
		"--specialist", "Dr. Trost", "--diagnosis-codes", "Z57.1", "--rating", "2")
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if !strings.Contains(out, "Annual check") || !strings.Contains(out, "Occupational exposure to radiation") {
		t.Errorf("expected rendered entry with resolved diagnosis, got:\n%s", out)
	}

	out, _, err = run(t, "--api", api, "diagnoses", "list")
	if err != nil || !strings.Contains(out, "S62.5") {
		t.Errorf("diagnoses: %q %v", out, err)
	}
}

func TestEntriesAdd_InvalidFormIsNotSubmitted(t *testing.T) {
	api, repo := startAPI(t)
	p, err := repo.CreatePatient(context.Background(), newPatientForTest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, errOut, err := run(t, "--api", api, "entries", "add", p.ID,
		"--type", "OccupationalHealthcare", "--date", "2024-03-01",
		"--description", "Sore back", "--specialist", "Dr. Trost")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(errOut, "employerName") {
		t.Errorf("expected employerName to be reported, got %q", errOut)
	}
	got, _ := repo.GetPatient(context.Background(), p.ID)
	if len(got.Entries) != 0 {
		t.Error("invalid entry must not reach the server")
	}
}

func TestEntriesAdd_ServerRejectionIsReported(t *testing.T) {
	api, repo := startAPI(t)
	p, _ := repo.CreatePatient(context.Background(), newPatientForTest())

	_, _, err := run(t, "--api", api, "entries", "add", p.ID,
		"--type", "Hospital", "--date", "2024-03-01",
		"--description", "Observation", "--specialist", "Dr. Trost")
	if err == nil || !strings.Contains(err.Error(), "discharge") {
		t.Errorf("expected server discharge error, got %v", err)
	}
}

func newPatientForTest() models.NewPatient {
	return models.NewPatient{
		Name: "Roger Murtaugh", DateOfBirth: "1950-02-12", SSN: "120250-55B",
		Gender: models.GenderMale, Occupation: "Sergeant",
	}
}
