package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aircastio/aircast/internal/models"
)

func TestHealth(t *testing.T) {
	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var body models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "healthy" {
		t.Errorf("Status = %q", body.Status)
	}
	if body.Version != "test" {
		t.Errorf("Version = %q", body.Version)
	}
}

func TestListModels(t *testing.T) {
	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/models", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var body models.ModelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Models) != 2 {
		t.Fatalf("Model count = %d, want 2", len(body.Models))
	}
	names := map[string]bool{}
	for _, m := range body.Models {
		names[m.Name] = true
		if m.MinObservations < 1 {
			t.Errorf("Model %s min_observations = %d", m.Name, m.MinObservations)
		}
	}
	if !names["seasonal"] || !names["gbt"] {
		t.Errorf("Models = %v", names)
	}
}

func TestNotFound(t *testing.T) {
	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/no/such/route", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Status = %d, want 404", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "NOT_FOUND" {
		t.Errorf("Code = %q", body.Error.Code)
	}
	if body.Error.Path != "/no/such/route" {
		t.Errorf("Path = %q", body.Error.Path)
	}
}
