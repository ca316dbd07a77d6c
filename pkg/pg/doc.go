// Package pg provides PostgreSQL bootstrap helpers on top of pgx/v5:
// a Config struct populated from environment variables, Connect with retry,
// goose-backed Migrate, a Healthcheck closure, and error classification
// helpers (IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError)
// used by the storage layers to translate driver errors into domain errors.
package pg
