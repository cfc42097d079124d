// Package complaint provides the core logic for the geolocated complaint
// lifecycle: creation with a derived geo point, filtered and proximity
// listings, and partial admin updates.
package complaint

import (
	"fmt"
	"log"
	"time"

	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"
	"civicgo/backend/internal/storage"

	"github.com/lib/pq"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new complaint service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// CreateRequest carries the citizen-supplied fields of a new complaint.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Images      []string `json:"images"` // base64 encoded
}

// UpdatePatch carries the admin-editable fields. A nil field is left
// unchanged, it is never cleared.
type UpdatePatch struct {
	Status          *string `json:"status"`
	AssignedTo      *string `json:"assigned_to"`
	ResolutionNotes *string `json:"resolution_notes"`
}

// Create stores a new complaint with status "pending" and a derived geo
// point, ensures the geo index exists and publishes a lifecycle event.
func (s *Service) Create(userID, userName string, req CreateRequest) (*models.Complaint, error) {
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	complaint := &models.Complaint{
		UserID:      userID,
		UserName:    userName,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      config.StatusPending,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Images:      pq.StringArray(req.Images),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if complaint.Images == nil {
		complaint.Images = pq.StringArray{}
	}

	if err := s.Storage.CreateComplaint(complaint); err != nil {
		return nil, fmt.Errorf("cannot save complaint: %w", err)
	}
	if err := s.Storage.EnsureGeoIndex(); err != nil {
		return nil, fmt.Errorf("cannot ensure geo index: %w", err)
	}

	s.publish("created", complaint)
	return complaint, nil
}

// List returns complaints matching the optional status/category filters.
func (s *Service) List(status, category string) ([]models.Complaint, error) {
	return s.Storage.FindComplaints(status, category, config.MaxListResults)
}

// ListNearby returns complaints within radiusMeters of the point, nearest
// first. A zero radius matches only complaints at the exact point; negative
// radii are rejected.
func (s *Service) ListNearby(lat, lon, radiusMeters float64) ([]models.Complaint, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	if radiusMeters < 0 {
		return nil, ErrInvalidRadius
	}
	return s.Storage.FindComplaintsNearby(lat, lon, radiusMeters, config.MaxListResults)
}

// ListByUser returns all complaints filed by the given user.
func (s *Service) ListByUser(userID string) ([]models.Complaint, error) {
	return s.Storage.FindComplaintsByUser(userID, config.MaxListResults)
}

// Get returns a single complaint or ErrNotFound.
func (s *Service) Get(id string) (*models.Complaint, error) {
	complaint, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	return complaint, nil
}

// Update applies a partial patch and bumps updated_at. Role checks happen
// in the HTTP layer, not here.
func (s *Service) Update(id string, patch UpdatePatch) (*models.Complaint, error) {
	existing, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.AssignedTo != nil {
		fields["assigned_to"] = *patch.AssignedTo
	}
	if patch.ResolutionNotes != nil {
		fields["resolution_notes"] = *patch.ResolutionNotes
	}

	if err := s.Storage.UpdateComplaintFields(id, fields); err != nil {
		return nil, fmt.Errorf("cannot update complaint: %w", err)
	}

	updated, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.publish("updated", updated)
	return updated, nil
}

// publish sends a fire-and-forget lifecycle event; failures are only logged.
func (s *Service) publish(eventType string, complaint *models.Complaint) {
	event := models.ComplaintEvent{
		Type:      eventType,
		Complaint: *complaint,
		At:        time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Storage.PublishComplaintEvent(event); err != nil {
		log.Printf("Error publishing complaint event: %v", err)
	}
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
