package foreign

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"newt/internal/object"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connection handles index this table. Evaluation is single-threaded, so
// plain map access is fine.
var (
	dbConnections       = map[int64]*sql.DB{}
	dbNextHandle  int64 = 1
)

func newDbModule() *object.Record {
	m := object.NewRecord()
	m.Register("open", hostFunc("db.open", 2, dbOpen))
	m.Register("query", hostFunc("db.query", -1, dbQuery))
	m.Register("exec", hostFunc("db.exec", -1, dbExec))
	m.Register("close", hostFunc("db.close", 1, dbClose))
	return m
}

func dbOpen(args []object.Value) object.Value {
	driver, errObj := unpackString(args[0], "db.open")
	if errObj != nil {
		return errObj
	}
	dsn, errObj := unpackString(args[1], "db.open")
	if errObj != nil {
		return errObj
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return newError("failed to open connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return newError("failed to ping database: %v", err)
	}

	handle := dbNextHandle
	dbNextHandle++
	dbConnections[handle] = db
	return &object.Integer{Value: handle}
}

func dbQuery(args []object.Value) object.Value {
	if len(args) < 2 {
		return newError("db.query expects at least 2 arguments: handle, sql")
	}

	handle, errObj := unpackInteger(args[0], "db.query")
	if errObj != nil {
		return errObj
	}
	query, errObj := unpackString(args[1], "db.query")
	if errObj != nil {
		return errObj
	}

	db, ok := dbConnections[handle]
	if !ok {
		return newError("invalid connection handle: %d", handle)
	}

	params, errObj := bindParams(args[2:])
	if errObj != nil {
		return errObj
	}

	rows, err := db.Query(query, params...)
	if err != nil {
		return newError("query failed: %v", err)
	}
	defer rows.Close()

	return renderRows(rows)
}

func dbExec(args []object.Value) object.Value {
	if len(args) < 2 {
		return newError("db.exec expects at least 2 arguments: handle, sql")
	}

	handle, errObj := unpackInteger(args[0], "db.exec")
	if errObj != nil {
		return errObj
	}
	query, errObj := unpackString(args[1], "db.exec")
	if errObj != nil {
		return errObj
	}

	db, ok := dbConnections[handle]
	if !ok {
		return newError("invalid connection handle: %d", handle)
	}

	params, errObj := bindParams(args[2:])
	if errObj != nil {
		return errObj
	}

	result, err := db.Exec(query, params...)
	if err != nil {
		return newError("exec failed: %v", err)
	}

	// lib/pq has no LastInsertId; the zero value stands in.
	affected, _ := result.RowsAffected()
	lastID, _ := result.LastInsertId()

	summary := object.NewRecord()
	summary.Register("rowsAffected", &object.Integer{Value: affected})
	summary.Register("lastInsertId", &object.Integer{Value: lastID})
	return summary
}

func dbClose(args []object.Value) object.Value {
	handle, errObj := unpackInteger(args[0], "db.close")
	if errObj != nil {
		return errObj
	}

	db, ok := dbConnections[handle]
	if !ok {
		return newError("invalid connection handle: %d", handle)
	}

	delete(dbConnections, handle)
	if err := db.Close(); err != nil {
		return newError("failed to close connection: %v", err)
	}

	return UNDEFINED
}

// bindParams maps call arguments onto driver values. Only integers, strings
// and undefined (NULL) cross the boundary.
func bindParams(args []object.Value) ([]interface{}, *object.Error) {
	params := make([]interface{}, len(args))
	for i, arg := range args {
		switch arg := arg.(type) {
		case *object.Integer:
			params[i] = arg.Value
		case *object.String:
			params[i] = arg.Value
		case *object.Undefined:
			params[i] = nil
		default:
			return nil, newError("cannot bind %s as a query parameter", arg.Type())
		}
	}
	return params, nil
}

func renderRows(rows *sql.Rows) object.Value {
	columns, err := rows.Columns()
	if err != nil {
		return newError("query failed: %v", err)
	}

	var rendered []object.Value
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return newError("failed to scan row: %v", err)
		}

		row := object.NewRecord()
		for i, col := range columns {
			row.Register(col, columnValue(values[i]))
		}
		rendered = append(rendered, row)
	}
	if err := rows.Err(); err != nil {
		return newError("query failed: %v", err)
	}

	return indexedRecord(rendered)
}

func columnValue(v interface{}) object.Value {
	switch v := v.(type) {
	case nil:
		return UNDEFINED
	case int64:
		return &object.Integer{Value: v}
	case bool:
		return boolInteger(v)
	case float64:
		return &object.String{Value: strconv.FormatFloat(v, 'f', -1, 64)}
	case []byte:
		return &object.String{Value: string(v)}
	case string:
		return &object.String{Value: v}
	case time.Time:
		return &object.String{Value: v.Format(time.RFC3339)}
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}
