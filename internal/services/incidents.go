package services

import (
	"strings"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/apperr"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/models"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/utils"

	"gorm.io/gorm"
)

const IncidentPageSize = 1000

// IncidentService reads the incident feed and bumps its counters. Rows are
// written by the ingestion job, never by this app.
type IncidentService struct{}

var incidentService *IncidentService

// GetIncidentService returns the singleton incident service.
func GetIncidentService() *IncidentService {
	if incidentService == nil {
		incidentService = &IncidentService{}
	}
	return incidentService
}

// List returns one page of incidents, newest report first, with map
// coordinates filled in.
func (s *IncidentService) List(page int) ([]models.Incident, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := db.DB.Model(&models.Incident{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.UpstreamUnavailable, "count incidents", err)
	}

	var incidents []models.Incident
	err := db.DB.
		Order("time_reported DESC").
		Offset((page - 1) * IncidentPageSize).
		Limit(IncidentPageSize).
		Find(&incidents).Error
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.UpstreamUnavailable, "fetch incidents", err)
	}

	attachCoordinates(incidents)
	return incidents, total, nil
}

// All returns every incident, newest first. Used by the map and the stats
// endpoints, which aggregate over the full data set.
func (s *IncidentService) All() ([]models.Incident, error) {
	var incidents []models.Incident
	if err := db.DB.Order("time_reported DESC").Find(&incidents).Error; err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch incidents", err)
	}
	attachCoordinates(incidents)
	return incidents, nil
}

func attachCoordinates(incidents []models.Incident) {
	for i := range incidents {
		coords := utils.CoordinatesFor(incidents[i].IncidentLocation)
		incidents[i].Lat = coords.Lat
		incidents[i].Lng = coords.Lng
	}
}

// GetByID loads one incident row by its id.
func (s *IncidentService) GetByID(id string) (*models.Incident, error) {
	var incident models.Incident
	if err := db.DB.First(&incident, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "incident not found")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch incident", err)
	}
	coords := utils.CoordinatesFor(incident.IncidentLocation)
	incident.Lat = coords.Lat
	incident.Lng = coords.Lng
	return &incident, nil
}

// GetByReportSlug loads one incident by the URL form of its report number,
// where slashes are written as dashes ("2025-001234" for "2025/001234").
func (s *IncidentService) GetByReportSlug(slug string) (*models.Incident, error) {
	reportNumber := strings.ReplaceAll(slug, "-", "/")

	var incident models.Incident
	if err := db.DB.First(&incident, "report_number = ?", reportNumber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "incident not found")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, "fetch incident", err)
	}
	coords := utils.CoordinatesFor(incident.IncidentLocation)
	incident.Lat = coords.Lat
	incident.Lng = coords.Lng
	return &incident, nil
}

// IncrementView bumps the view counter atomically and returns the new count.
func (s *IncidentService) IncrementView(id string) (int, error) {
	return s.increment(id, "view_count")
}

// IncrementShare bumps the share counter atomically and returns the new count.
func (s *IncidentService) IncrementShare(id string) (int, error) {
	return s.increment(id, "share_count")
}

func (s *IncidentService) increment(id, column string) (int, error) {
	res := db.DB.Model(&models.Incident{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.UpstreamUnavailable, "update "+column, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.New(apperr.NotFound, "incident not found")
	}

	var incident models.Incident
	if err := db.DB.Select(column).First(&incident, "id = ?", id).Error; err != nil {
		return 0, apperr.Wrap(apperr.UpstreamUnavailable, "reload "+column, err)
	}
	if column == "view_count" {
		return incident.ViewCount, nil
	}
	return incident.ShareCount, nil
}
