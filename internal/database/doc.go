// Package database provides the data access layer for the marketplace.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── errors.go        # Driver-independent error classification
//	├── users/           # Accounts and notification preferences
//	├── dictionaries/    # Dictionary CRUD, cascading delete, listings
//	├── words/           # Words and per-dictionary counts
//	├── purchases/       # Purchase records
//	├── progress/        # Learning progress and learned-word sets
//	└── audit/           # Audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	dictRepo := dictionaries.NewRepository(db.DB)
//	wordRepo := words.NewRepository(db.DB)
//
//	dict, err := dictRepo.GetByID(ctx, 42)
//	counts, err := wordRepo.CountByDictionaries(ctx, []uint{dict.ID})
//
// Missing rows surface as gorm.ErrRecordNotFound; callers test for it with
// IsNotFound. Unique index violations surface through IsUniqueViolation no
// matter which driver produced them.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add compile-time interface checks in internal/interfaces
package database
