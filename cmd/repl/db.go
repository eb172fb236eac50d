package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/bawdo/wincall/internal/logutil"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

const maxRows = 1000

type schemaCache struct {
	tables  []string
	columns map[string][]string // table name -> column names
}

type dbConn struct {
	db     *sql.DB
	dsn    string
	engine string
	schema schemaCache
}

func connect(engine, dsn string) (*dbConn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, errors.Errorf("no driver for engine %q", engine)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Annotate(err, "open")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "ping")
	}

	conn := newConn(db, engine, dsn)
	if err := conn.loadSchema(); err != nil {
		// Schema is only used for completion.
		logutil.BgLogger().Warn("schema introspection failed",
			zap.String("engine", engine), zap.Error(err))
	}
	logutil.BgLogger().Info("connected",
		zap.String("engine", engine), zap.String("dsn", sanitizeDSN(dsn)))
	return conn, nil
}

// newConn wraps an open handle without pinging it or loading the schema.
func newConn(db *sql.DB, engine, dsn string) *dbConn {
	conn := &dbConn{db: db, dsn: dsn, engine: engine}
	conn.schema.columns = make(map[string][]string)
	return conn
}

func (c *dbConn) close() error {
	return c.db.Close()
}

func (c *dbConn) execQuery(sqlStr string, params []any) (string, error) {
	logutil.BgLogger().Debug("run query", zap.String("sql", sqlStr), zap.Int("params", len(params)))
	rows, err := c.db.Query(sqlStr, params...)
	if err != nil {
		return "", errors.Annotate(err, "query")
	}
	defer func() { _ = rows.Close() }()
	return formatRows(rows)
}

func formatRows(rows *sql.Rows) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", errors.Annotate(err, "columns")
	}

	var data [][]string
	truncated := false
	for rows.Next() {
		if len(data) >= maxRows {
			truncated = true
			break
		}
		vals := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", errors.Annotate(err, "scan")
		}
		row := make([]string, len(columns))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return "", errors.Annotate(err, "rows")
	}

	result := formatTable(columns, data)
	if truncated {
		result += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return result, nil
}

func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	sep := buildSeparator(widths)

	b.WriteString(sep)
	writeRow(&b, widths, columns)
	b.WriteString(sep)
	for _, row := range rows {
		writeRow(&b, widths, row)
	}
	b.WriteString(sep)

	if n := len(rows); n == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", n)
	}
	return b.String()
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	b.WriteByte('|')
	for i, cell := range cells {
		fmt.Fprintf(b, " %-*s |", widths[i], cell)
	}
	b.WriteByte('\n')
}

func buildSeparator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func (c *dbConn) loadSchema() error {
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "sqlite":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return errors.Errorf("unsupported engine: %s", c.engine)
	}
	tables, err := c.queryStringColumn(query)
	if err != nil {
		return err
	}
	c.schema.tables = tables
	return nil
}

func (c *dbConn) schemaTables() []string {
	return c.schema.tables
}

// schemaColumns returns table's columns, querying once per table.
func (c *dbConn) schemaColumns(table string) []string {
	if cols, ok := c.schema.columns[table]; ok {
		return cols
	}
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position"
	case "mysql":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	case "sqlite":
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		return nil
	}
	cols, err := c.queryStringColumn(query, table)
	if err != nil {
		logutil.BgLogger().Debug("column introspection failed", zap.String("table", table), zap.Error(err))
		return nil
	}
	c.schema.columns[table] = cols
	return cols
}

func (c *dbConn) queryStringColumn(query string, params ...any) ([]string, error) {
	rows, err := c.db.Query(query, params...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer func() { _ = rows.Close() }()
	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, errors.Trace(err)
		}
		result = append(result, s)
	}
	return result, errors.Trace(rows.Err())
}

func sanitizeDSN(dsn string) string {
	// URL style (postgres).
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" && u.User != nil {
		if _, hasPass := u.User.Password(); hasPass {
			// Rebuilt by hand so the mask is not percent-encoded.
			masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
			if u.RawQuery != "" {
				masked += "?" + u.RawQuery
			}
			return masked
		}
		return dsn
	}

	// MySQL style: user:pass@tcp(host)/db
	if atIdx := strings.Index(dsn, "@"); atIdx > 0 {
		userPass := dsn[:atIdx]
		if colonIdx := strings.Index(userPass, ":"); colonIdx >= 0 {
			return userPass[:colonIdx+1] + "****" + dsn[atIdx:]
		}
	}
	return dsn
}
