package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrTokenNotMatched is returned when a conditional update guarded by a
	// one-time token digest affects no rows: the digest was already consumed,
	// replaced or has expired.
	ErrTokenNotMatched = errors.New("one-time token not matched")

	// ErrPostNotFound is returned when a post does not exist or, for
	// owner-scoped writes, is not owned by the caller.
	ErrPostNotFound = errors.New("post was not found")

	// ErrMediaNotFound is returned when a stored media object is missing.
	ErrMediaNotFound = errors.New("media was not found")

	// ErrInvalidMediaPath is returned for object paths escaping the upload
	// directory.
	ErrInvalidMediaPath = errors.New("invalid media path")

	// ErrUnsupportedMediaType is returned when the sniffed content of an
	// upload is not an allowed video or image format for its kind.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrStoreUnavailable wraps connection-level and transient driver
	// failures.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUniqueViolation wraps driver unique-constraint errors before a
	// repository maps them to a domain sentinel.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrUnsupportedDSN is returned for a DATABASE_URL with an unknown scheme.
	ErrUnsupportedDSN = errors.New("unsupported database url")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
