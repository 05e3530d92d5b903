package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT or UPDATE of a user
	// violates the unique e-mail constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user row matches the lookup.
	ErrUserNotFound = errors.New("user was not found")

	// ErrMovieNotFound is returned when no active movie matches the lookup.
	// Soft-deleted movies are reported the same way.
	ErrMovieNotFound = errors.New("movie was not found")

	// ErrEpisodeNotFound is returned when no episode matches the lookup.
	ErrEpisodeNotFound = errors.New("episode was not found")

	// ErrCommentNotFound is returned when no active comment matches the lookup.
	ErrCommentNotFound = errors.New("comment was not found")

	// ErrAlreadyPurchased is returned when a purchase row for the same
	// (user_id, episode_id) pair already exists.
	ErrAlreadyPurchased = errors.New("episode already purchased")

	// ErrInsufficientFunds is returned by a conditional debit when the
	// balance is lower than the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrReferenceNotFound is returned when a foreign key points at a row
	// that does not exist.
	ErrReferenceNotFound = errors.New("referenced entity does not exist")

	// ErrNothingToUpdate is returned when a patch carries no field.
	ErrNothingToUpdate = errors.New("nothing to update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
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

	// ErrScanningRows is returned when multi-row iteration fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
