package config

const (
	// DefaultDatabasePath is the default path for the sqlite database
	DefaultDatabasePath = "./marketplace.db"

	// DefaultMediaRoot is where uploaded cover images are stored
	DefaultMediaRoot = "./media"

	// DefaultMaxUploadBytes caps a single cover image upload (5 MiB)
	DefaultMaxUploadBytes = 5 << 20

	// DefaultPurchaseCode is the simulated payment code accepted by the purchase flow
	DefaultPurchaseCode = "1013"
)
