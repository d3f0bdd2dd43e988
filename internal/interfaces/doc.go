// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
// Declared by the consumer in internal/services/interfaces.go and
// implemented by one repository per entity under internal/database/:
//
//   - DictionaryStore: Dictionary CRUD and listings (database/dictionaries)
//   - WordStore: Words, counts and membership checks (database/words)
//   - PurchaseStore: Purchases and batch ownership flags (database/purchases)
//   - ProgressStore: Learning progress upsert (database/progress)
//   - UserStore: Profiles and owner usernames (database/users)
//
// internal/auth declares its own UserRepository and UserLookup, also
// satisfied by database/users.
//
// ## External Service Interfaces
//
//   - ImageFinder: Cover image lookup (internal/images, Unsplash or a no-op)
//   - CoverStorage: Uploaded cover files (internal/covers)
//   - Auditor: Security and business events (internal/audit)
//
// # Adding a New Image Provider
//
//  1. Implement ImageFinder in internal/images/
//
//     type PexelsClient struct {
//         http *resty.Client
//     }
//
//     func (c *PexelsClient) Find(ctx context.Context, query string) (string, error)
//
//  2. Add a compile-time check to checks.go
//
//  3. Select it in entrypoint.go
//
// Providers must return images.ErrNoResult when nothing matches. The
// services log lookup failures and carry on without a cover.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the interface the service needs in internal/services/interfaces.go
//
//  4. Add compile-time check:
//
//     var _ services.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
