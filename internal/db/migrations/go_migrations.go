// Package migrations holds the goose migrations for the cue card database.
// SQL files cover the portable schema; Go migrations cover tables whose column
// types differ per driver.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect = "sqlite3"

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// byDialect picks the statement for the current dialect, falling back to sqlite3.
func byDialect(stmts map[string]string) string {
	if s, ok := stmts[dialect]; ok {
		return s
	}
	return stmts["sqlite3"]
}
