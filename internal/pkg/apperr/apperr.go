package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a failure so handlers can map it to a response code
// without inspecting backend-specific errors.
type Kind string

const (
	Validation    Kind = "validation"
	NotFound      Kind = "not_found"
	Authorization Kind = "authorization"
	Persistence   Kind = "persistence"
	Upload        Kind = "upload"
	// Conflict marks a uniqueness violation. For favorites it is
	// swallowed inside the service and never reaches the caller.
	Conflict Kind = "conflict"
)

type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a taxonomy error with a caller-facing message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and operation to an underlying error.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of err, or Persistence if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Persistence
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Postgres error codes special-cased by the store mapping.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromDB translates a relational-store error into the taxonomy.
// Missing rows become NotFound, uniqueness violations Conflict,
// broken references NotFound, and everything else Persistence.
func FromDB(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFound, op, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Wrap(Conflict, op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Wrap(Conflict, op, err)
		case pgForeignKeyViolation:
			return Wrap(NotFound, op, err)
		}
	}
	// SQLite reports constraint failures as plain strings.
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, pgUniqueViolation) {
		return Wrap(Conflict, op, err)
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return Wrap(NotFound, op, err)
	}
	return Wrap(Persistence, op, err)
}
