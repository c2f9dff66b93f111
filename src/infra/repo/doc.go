// Package repo contains implementations of the user repository port.
//
// Stores:
//   - InMemoryRepository: the reference store, a mutex-guarded map
//   - PostgresRepository: the same contract over a pgx pool
//
// Decorators (same interface, wrap any store):
//   - ValidatingRepository: shape checks and a payload predicate on writes
//   - LoggingRepository: one log line per call, tagged with an operation ID
//
// Typical assembly:
//
//	var users ports.UserRepository = repo.NewInMemoryRepository(log)
//	users = repo.NewValidatingRepository(users, domain.HasValidName)
//	users = repo.NewLoggingRepository(users, log)
package repo
