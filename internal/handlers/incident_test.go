package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

func TestIncidentListEndpoint(t *testing.T) {
	r := setupTestServer(t)

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, report := range []string{"2025/004001", "2025/004002"} {
		incident := &models.Incident{
			ReportNumber:     report,
			IncidentType:     "Larceny",
			IncidentLocation: "Atkins Library",
			TimeReported:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.DB.Create(incident).Error; err != nil {
			t.Fatalf("failed to create incident: %v", err)
		}
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/incidents", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	incidents := body["incidents"].([]interface{})
	if len(incidents) != 2 || body["total"].(float64) != 2 {
		t.Fatalf("expected 2 incidents, got %v", body)
	}
	first := incidents[0].(map[string]interface{})
	if first["report_number"].(string) != "2025/004002" {
		t.Errorf("incidents should be newest first")
	}
	if first["lat"].(float64) == 0 {
		t.Errorf("list should attach coordinates")
	}
}

func TestIncidentDetailBySlug(t *testing.T) {
	r := setupTestServer(t)

	incident := &models.Incident{
		ReportNumber:     "2025/004010",
		IncidentType:     "Assault",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/incidents/2025-004010", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail returned %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	got := body["incident"].(map[string]interface{})
	if got["report_number"].(string) != "2025/004010" {
		t.Errorf("slug should resolve dashes back to slashes")
	}
	if body["theme"] == nil {
		t.Errorf("detail should carry the display theme")
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/incidents/2025-999999", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown report should be 404, got %d", w.Code)
	}
}

func TestViewAndShareCounters(t *testing.T) {
	r := setupTestServer(t)

	incident := &models.Incident{
		ReportNumber:     "2025/004020",
		IncidentType:     "Larceny",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodPost, "/api/incidents/view", gin.H{"incidentId": incident.ID}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view returned %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"].(bool) != true || body["view_count"].(float64) != 1 {
		t.Errorf("first view should report count 1: %v", body)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/incidents/share", gin.H{"incidentId": incident.ID}, nil)
	body = decodeBody(t, w)
	if w.Code != http.StatusOK || body["share_count"].(float64) != 1 {
		t.Errorf("first share should report count 1: %v", body)
	}

	// Missing and unknown ids map to 400 and 404.
	w, _ = doJSON(t, r, http.MethodPost, "/api/incidents/view", gin.H{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing incidentId should be 400, got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/incidents/view", gin.H{"incidentId": "missing"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown incidentId should be 404, got %d", w.Code)
	}
}

func TestIncidentListIsCached(t *testing.T) {
	r := setupTestServer(t)

	incident := &models.Incident{
		ReportNumber:     "2025/004030",
		IncidentType:     "Larceny",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/incidents", nil, nil)
	if got := len(decodeBody(t, w)["incidents"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 incident, got %d", got)
	}

	// A row added behind the cache stays invisible until the TTL passes.
	second := &models.Incident{
		ReportNumber:     "2025/004031",
		IncidentType:     "Larceny",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(second).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/incidents", nil, nil)
	if got := len(decodeBody(t, w)["incidents"].([]interface{})); got != 1 {
		t.Errorf("cached page should not see the new row yet, got %d", got)
	}

	utils.GetCache().Purge()
	w, _ = doJSON(t, r, http.MethodGet, "/api/incidents", nil, nil)
	if got := len(decodeBody(t, w)["incidents"].([]interface{})); got != 2 {
		t.Errorf("purged cache should refetch, got %d", got)
	}
}
