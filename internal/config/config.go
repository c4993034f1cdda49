package config

const (
	DefaultTimeZone = "Africa/Abidjan"

	// Upload limits for the reconciliation wizard
	MaxUploadBytes = 50 * 1024 * 1024

	// Service addresses
	GatewayAddr   = ":8081"
	InventoryAddr = ":7143"

	// Retention job defaults: purge completed sessions at 03:00,
	// keeping them for thirty days.
	DefaultRetentionSchedule = "0 3 * * *"
	DefaultRetentionDays     = 30

	// Resume cache entries expire after this many minutes.
	ResumeCacheTTLMinutes = 30
)
