package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/lib/pq"
)

// Postgres error codes the services react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
)

func pqCode(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// IsExclusionViolation reports whether err comes from an EXCLUDE constraint,
// which on bookings means an overlapping slot slipped past the lock.
func IsExclusionViolation(err error) bool {
	code, ok := pqCode(err)
	return ok && code == codeExclusionViolation
}

// IsUniqueViolation reports a duplicate key error.
func IsUniqueViolation(err error) bool {
	code, ok := pqCode(err)
	return ok && code == codeUniqueViolation
}

// IsForeignKeyViolation reports a reference to a missing row.
func IsForeignKeyViolation(err error) bool {
	code, ok := pqCode(err)
	return ok && code == codeForeignKeyViolation
}

// IsStoreUnavailable reports whether err means the database could not be
// reached, as opposed to the query being rejected.
func IsStoreUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if code, ok := pqCode(err); ok {
		class := string(code.Class())
		// 08: connection exception, 53: insufficient resources, 57P: operator intervention.
		return class == "08" || class == "53" || strings.HasPrefix(string(code), "57P")
	}
	return false
}
