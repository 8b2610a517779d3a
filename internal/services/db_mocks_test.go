package services

import (
	"context"
	"errors"
	"reflect"
)

// fakeDB implements DB with per-call hooks so each test wires only what it
// needs. Unset hooks fail loudly.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)

	queryRowCalls int
	queryCalls    int
	execCalls     int
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	f.queryRowCalls++
	if f.QueryRowFunc == nil {
		return fakeRow{scanFunc: func(dest ...any) error {
			return errors.New("unexpected QueryRow call")
		}}
	}
	return f.QueryRowFunc(ctx, sql, args...)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	f.queryCalls++
	if f.QueryFunc == nil {
		return nil, errors.New("unexpected Query call")
	}
	return f.QueryFunc(ctx, sql, args...)
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	f.execCalls++
	if f.ExecFunc == nil {
		return nil, errors.New("unexpected Exec call")
	}
	return f.ExecFunc(ctx, sql, args...)
}

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (f fakeRow) Scan(dest ...any) error {
	return f.scanFunc(dest...)
}

// rowFromValues builds a Row whose Scan assigns the given values positionally.
// A nil value leaves the destination at its zero value.
func rowFromValues(values ...any) Row {
	return fakeRow{scanFunc: func(dest ...any) error {
		if len(dest) != len(values) {
			return errors.New("scan destination count mismatch")
		}
		for i, v := range values {
			if v == nil {
				continue
			}
			target := reflect.ValueOf(dest[i]).Elem()
			val := reflect.ValueOf(v)
			if !val.Type().AssignableTo(target.Type()) {
				if val.Type().ConvertibleTo(target.Type()) {
					val = val.Convert(target.Type())
				} else if target.Kind() == reflect.Pointer && val.Type().AssignableTo(target.Type().Elem()) {
					// Scanning a value into a *T destination field.
					p := reflect.New(target.Type().Elem())
					p.Elem().Set(val)
					val = p
				} else {
					return errors.New("scan type mismatch")
				}
			}
			target.Set(val)
		}
		return nil
	}}
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := rowFromValues(f.rows[f.idx-1]...)
	return row.Scan(dest...)
}

func (f *fakeRows) Close() {}

func (f *fakeRows) Err() error { return f.err }

type fakeCommandTag struct {
	rowsAffected int64
}

func (f fakeCommandTag) RowsAffected() int64 { return f.rowsAffected }
