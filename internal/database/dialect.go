package database

import (
	"fmt"
	"strconv"
	"strings"

	"wellness-analytics/internal/config"
)

// Dialect hides the few places where PostgreSQL and MySQL disagree.
type Dialect interface {
	DriverName() string
	// Rebind rewrites '?' placeholders into the driver's native form.
	Rebind(query string) string
	// SupportsReturning reports whether INSERT ... RETURNING is available.
	SupportsReturning() bool
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres, "postgresql":
		return Postgres{}, nil
	case config.DriverMySQL:
		return MySQL{}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

type Postgres struct{}

func (Postgres) DriverName() string { return "postgres" }

func (Postgres) SupportsReturning() bool { return true }

func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type MySQL struct{}

func (MySQL) DriverName() string { return "mysql" }

func (MySQL) SupportsReturning() bool { return false }

func (MySQL) Rebind(query string) string { return query }
