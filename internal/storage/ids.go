// ABOUTME: ID prefix resolution shared by the SQLite and key-value backends.
// ABOUTME: Maps short ID prefixes to full UUIDs with not-found and ambiguity errors.
package storage

import (
	"fmt"
	"strings"
)

func notFound(idOrPrefix string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

func ambiguous(idOrPrefix string) error {
	return fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idOrPrefix)
}

// resolveID finds the full ID in table from a prefix.
// table is always one of the package's own table names.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	if isFullUUID(idOrPrefix) {
		return strings.ToLower(idOrPrefix), nil
	}
	if strings.TrimSpace(idOrPrefix) == "" {
		return "", notFound(idOrPrefix)
	}

	query := `SELECT id FROM ` + table + ` WHERE id LIKE ? || '%' LIMIT 2`
	rows, err := d.db.Query(query, strings.ToLower(idOrPrefix))
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", table, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}

	return pickMatch(idOrPrefix, matches)
}

// pickMatch applies the single-match rule to a candidate list.
func pickMatch(idOrPrefix string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", notFound(idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", ambiguous(idOrPrefix)
	}
}
