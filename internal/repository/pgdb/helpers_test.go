package pgdb

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresDuplicate(t *testing.T) {
	c := qt.New(t)

	dup := &pgconn.PgError{Code: uniqueViolationCode}

	c.Assert(postgresDuplicate(dup), qt.IsTrue)
	c.Assert(postgresDuplicate(fmt.Errorf("insert product: %w", dup)), qt.IsTrue)
	c.Assert(postgresDuplicate(&pgconn.PgError{Code: foreignKeyViolationCode}), qt.IsFalse)
	c.Assert(postgresDuplicate(errors.New("connection reset")), qt.IsFalse)
	c.Assert(postgresDuplicate(nil), qt.IsFalse)
}

func TestPostgresFKViolation(t *testing.T) {
	c := qt.New(t)

	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	c.Assert(postgresFKViolation(fk), qt.IsTrue)
	c.Assert(postgresFKViolation(fmt.Errorf("insert variation: %w", fk)), qt.IsTrue)
	c.Assert(postgresFKViolation(&pgconn.PgError{Code: uniqueViolationCode}), qt.IsFalse)
	c.Assert(postgresFKViolation(nil), qt.IsFalse)
}
