package native

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// sqliteFuncs implements the modernc.org/sqlite-backed persistence
// functions SPEC_FULL.md's domain stack assigns to lib/db: dbOpen opens
// a database (in-memory or file-backed, a pure-Go driver so no cgo is
// needed), dbExec runs a statement for its side effect, dbQuery runs a
// statement and returns its rows. There is no funvibe-funxy equivalent
// (it has no SQL driver in its domain stack), so the registry/handle
// shape follows native_grpc.go's house style: handles are opaque
// strings, not Go struct values, since internal/values.FromAny only
// boxes scalar/string/list/map shapes.
func sqliteFuncs() map[string]ast.NativeFunc {
	return map[string]ast.NativeFunc{
		"dbOpen":  dbOpen,
		"dbExec":  dbExec,
		"dbQuery": dbQuery,
	}
}

var (
	dbMu  sync.Mutex
	dbs   = map[string]*sql.DB{}
	dbSeq int
)

func dbOpen(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("dbOpen(dsn) takes 1 argument, got %d", len(args))
	}
	dsn, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("dbOpen: dsn must be a string")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("dbOpen: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("dbOpen: %w", err)
	}

	dbMu.Lock()
	dbSeq++
	handle := fmt.Sprintf("db:%d", dbSeq)
	dbs[handle] = db
	dbMu.Unlock()
	return handle, nil
}

func dbExec(args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("dbExec(db, query, ...params) takes at least 2 arguments, got %d", len(args))
	}
	db, query, params, err := dbArgs(args)
	if err != nil {
		return nil, fmt.Errorf("dbExec: %w", err)
	}
	result, err := db.Exec(query, params...)
	if err != nil {
		return nil, fmt.Errorf("dbExec: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

func dbQuery(args []any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("dbQuery(db, query, ...params) takes at least 2 arguments, got %d", len(args))
	}
	db, query, params, err := dbArgs(args)
	if err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}
	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}

	var out []any
	for rows.Next() {
		scanTargets := make([]any, len(cols))
		values := make([]any, len(cols))
		for i := range scanTargets {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("dbQuery: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeSQL(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}
	return out, nil
}

func dbArgs(args []any) (*sql.DB, string, []any, error) {
	handle, ok := args[0].(string)
	if !ok {
		return nil, "", nil, fmt.Errorf("db must be a handle string from dbOpen")
	}
	query, ok := args[1].(string)
	if !ok {
		return nil, "", nil, fmt.Errorf("query must be a string")
	}
	dbMu.Lock()
	db, ok := dbs[handle]
	dbMu.Unlock()
	if !ok {
		return nil, "", nil, fmt.Errorf("unknown or closed database %q", handle)
	}
	return db, query, args[2:], nil
}

// normalizeSQL rewrites a database/sql scan result into the shapes
// internal/values.FromAny already boxes: []byte (sqlite's TEXT/BLOB
// scan type) becomes a string, everything else passes through.
func normalizeSQL(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
