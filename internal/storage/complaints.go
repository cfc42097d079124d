package storage

import (
	"errors"

	"civicgo/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateComplaint зберігає скаргу разом із похідною геоколонкою одним
// INSERT-ом: рядок або записується повністю, або не записується взагалі.
// Порядок координат у geom — (longitude, latitude), як вимагає PostGIS.
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}
	return s.DB.Exec(`
		INSERT INTO complaints
			(id, user_id, user_name, title, description, category, status,
			 latitude, longitude, images, created_at, updated_at,
			 assigned_to, resolution_notes, geom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography)`,
		complaint.ID, complaint.UserID, complaint.UserName, complaint.Title,
		complaint.Description, complaint.Category, complaint.Status,
		complaint.Latitude, complaint.Longitude, complaint.Images,
		complaint.CreatedAt, complaint.UpdatedAt,
		complaint.AssignedTo, complaint.ResolutionNotes,
		complaint.Longitude, complaint.Latitude,
	).Error
}

// EnsureGeoIndex гарантує існування геоколонки та GIST-індексу над нею.
// Усі оператори ідемпотентні, тому виклик безпечний при кожному старті
// та після кожної вставки.
func (s *Service) EnsureGeoIndex() error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		`ALTER TABLE complaints ADD COLUMN IF NOT EXISTS geom geography(Point,4326)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_geom ON complaints USING GIST (geom)`,
	}
	for _, stmt := range statements {
		if err := s.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindComplaints повертає скарги з необов'язковими фільтрами рівності.
func (s *Service) FindComplaints(status, category string, limit int) ([]models.Complaint, error) {
	query := s.DB.Model(&models.Complaint{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var complaints []models.Complaint
	if err := query.Limit(limit).Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// FindComplaintsNearby повертає скарги в радіусі radiusMeters від точки,
// відсортовані за зростанням відстані (найближчі першими).
func (s *Service) FindComplaintsNearby(lat, lon, radiusMeters float64, limit int) ([]models.Complaint, error) {
	query := `
	SELECT id, user_id, user_name, title, description, category, status,
	       latitude, longitude, images, created_at, updated_at, assigned_to, resolution_notes
	FROM complaints
	WHERE geom IS NOT NULL
	  AND ST_DWithin(geom, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
	ORDER BY ST_Distance(geom, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography)
	LIMIT ?`

	var complaints []models.Complaint
	err := s.DB.Raw(query, lon, lat, radiusMeters, lon, lat, limit).Scan(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// FindComplaintsByUser повертає всі скарги конкретного користувача.
func (s *Service) FindComplaintsByUser(userID string, limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("user_id = ?", userID).Limit(limit).Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// GetComplaintByID повертає скаргу за ID або (nil, nil), якщо її немає.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Where("id = ?", id).First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

// UpdateComplaintFields застосовує частковий патч: змінюються лише передані поля.
func (s *Service) UpdateComplaintFields(id string, fields map[string]interface{}) error {
	return s.DB.Model(&models.Complaint{}).Where("id = ?", id).Updates(fields).Error
}

// CountComplaints рахує скарги; порожній status означає "всі".
func (s *Service) CountComplaints(status string) (int64, error) {
	query := s.DB.Model(&models.Complaint{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CategoryBreakdown групує скарги за категоріями.
// Вторинне сортування за назвою категорії робить порядок детермінованим.
func (s *Service) CategoryBreakdown() ([]models.CategoryCount, error) {
	var breakdown []models.CategoryCount
	err := s.DB.Model(&models.Complaint{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&breakdown).Error
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}
