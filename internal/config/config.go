package config

import "time"

const (
	// Roles
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"

	// Complaint statuses (відкритий набір: адміністратор може записати й інші значення)
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"

	// Tokens
	TokenTTL  = 30 * 24 * time.Hour
	TokenType = "bearer"

	// Queries
	MaxListResults      = 1000
	DefaultRadiusMeters = 5000.0

	// Redis Pub/Sub
	ComplaintEventsChannel = "complaints:events"
)

// DefaultCategories — довідник категорій, який засівається при першому старті.
var DefaultCategories = []struct {
	Name string
	Icon string
}{
	{"Roads", "road"},
	{"Street Lighting", "lightbulb"},
	{"Sanitation", "trash-2"},
	{"Water Supply", "droplet"},
	{"Drainage", "waves"},
	{"Parks & Gardens", "tree-deciduous"},
	{"Other", "circle-alert"},
}
