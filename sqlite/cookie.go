package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/newsparse"
)

// Compile-time interface verification.
var _ newsparse.CookieStore = (*CookieStore)(nil)

// CookieStore implements newsparse.CookieStore using SQLite.
type CookieStore struct {
	db  *DB
	now func() time.Time
}

// NewCookieStore creates a new CookieStore.
func NewCookieStore(db *DB) *CookieStore {
	return &CookieStore{db: db, now: time.Now}
}

// FindCookies returns the unexpired cookies stored for site. Expired rows
// are left in place and overwritten by the next SaveCookies.
func (s *CookieStore) FindCookies(ctx context.Context, site string) ([]newsparse.Cookie, error) {
	if site == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "site required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value, domain, path, expires_at
		FROM cookies
		WHERE site = ?
		ORDER BY name
	`, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := s.now()
	var cookies []newsparse.Cookie
	for rows.Next() {
		var c newsparse.Cookie
		var expiresAt string
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expiresAt); err != nil {
			return nil, err
		}
		if c.Expires, err = parseRFC3339(expiresAt, "expires_at"); err != nil {
			return nil, err
		}
		if c.Expired(now) {
			continue
		}
		cookies = append(cookies, c)
	}

	return cookies, rows.Err()
}

// SaveCookies replaces the cookies stored for site in one transaction.
func (s *CookieStore) SaveCookies(ctx context.Context, site string, cookies []newsparse.Cookie) error {
	if site == "" {
		return newsparse.Errorf(newsparse.EINVALID, "site required")
	}
	for _, c := range cookies {
		if c.Name == "" {
			return newsparse.Errorf(newsparse.EINVALID, "cookie name required")
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cookies WHERE site = ?`, site); err != nil {
		return err
	}

	savedAt := formatTime(s.now())
	for _, c := range cookies {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cookies (site, name, value, domain, path, expires_at, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (site, name) DO UPDATE SET
				value = excluded.value,
				domain = excluded.domain,
				path = excluded.path,
				expires_at = excluded.expires_at,
				saved_at = excluded.saved_at
		`, site, c.Name, c.Value, c.Domain, c.Path, formatTime(c.Expires), savedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteCookies removes every cookie stored for site.
func (s *CookieStore) DeleteCookies(ctx context.Context, site string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE site = ?`, site)
	return err
}
