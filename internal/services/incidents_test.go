package services

import (
	"testing"
	"time"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/utils"
)

func TestIncidentListOrderingAndCoordinates(t *testing.T) {
	setupTestDB(t)
	svc := GetIncidentService()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, report := range []string{"2025/002001", "2025/002002", "2025/002003"} {
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

	incidents, total, err := svc.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 || len(incidents) != 3 {
		t.Fatalf("expected 3 incidents, got %d (total %d)", len(incidents), total)
	}
	if incidents[0].ReportNumber != "2025/002003" {
		t.Errorf("incidents should be newest first, got %s", incidents[0].ReportNumber)
	}
	if incidents[0].Lat == 0 || incidents[0].Lng == 0 {
		t.Errorf("coordinates should be attached on fetch")
	}
}

func TestIncidentListUnknownLocationGetsCampusCenter(t *testing.T) {
	setupTestDB(t)

	incident := &models.Incident{
		ReportNumber:     "2025/002010",
		IncidentType:     "Larceny",
		IncidentLocation: "Somewhere off the map",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	incidents, _, err := GetIncidentService().List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if incidents[0].Lat != utils.DefaultCoordinates.Lat || incidents[0].Lng != utils.DefaultCoordinates.Lng {
		t.Errorf("unknown location should map to the campus center")
	}
}

func TestGetByReportSlug(t *testing.T) {
	setupTestDB(t)

	incident := &models.Incident{
		ReportNumber:     "2025/002020",
		IncidentType:     "Assault",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	got, err := GetIncidentService().GetByReportSlug("2025-002020")
	if err != nil {
		t.Fatalf("GetByReportSlug failed: %v", err)
	}
	if got.ID != incident.ID {
		t.Errorf("slug lookup returned the wrong incident")
	}

	if _, err := GetIncidentService().GetByReportSlug("2025-999999"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("missing report should be NotFound, got %v", err)
	}
}

func TestIncrementCounters(t *testing.T) {
	setupTestDB(t)
	svc := GetIncidentService()

	incident := &models.Incident{
		ReportNumber:     "2025/002030",
		IncidentType:     "Larceny",
		IncidentLocation: "Lot 6",
		TimeReported:     time.Now(),
	}
	if err := db.DB.Create(incident).Error; err != nil {
		t.Fatalf("failed to create incident: %v", err)
	}

	if n, err := svc.IncrementView(incident.ID); err != nil || n != 1 {
		t.Fatalf("first view should return 1, got %d (%v)", n, err)
	}
	if n, err := svc.IncrementView(incident.ID); err != nil || n != 2 {
		t.Fatalf("second view should return 2, got %d (%v)", n, err)
	}
	if n, err := svc.IncrementShare(incident.ID); err != nil || n != 1 {
		t.Fatalf("first share should return 1, got %d (%v)", n, err)
	}

	if _, err := svc.IncrementView("missing"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("incrementing a missing incident should be NotFound, got %v", err)
	}
}
