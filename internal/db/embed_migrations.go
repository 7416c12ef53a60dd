package db

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// MigrationFS holds the schema migrations as NNNNNN_name.{up,down}.sql pairs.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS

// LatestMigrationVersion returns the highest version among the embedded up migrations.
func LatestMigrationVersion() (uint, error) {
	names, err := fs.Glob(MigrationFS, "migrations/*.up.sql")
	if err != nil {
		return 0, err
	}
	var latest uint
	for _, name := range names {
		prefix, _, ok := strings.Cut(path.Base(name), "_")
		if !ok {
			return 0, fmt.Errorf("migration %s: missing version prefix", name)
		}
		v, err := strconv.ParseUint(prefix, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("migration %s: %w", name, err)
		}
		latest = max(latest, uint(v))
	}
	return latest, nil
}
