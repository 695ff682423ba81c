package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel inserts model into table and, when a row with the same
// conflict columns exists, overwrites every other column in place.
func UpsertModel(table string, model any, conflict ...string) (string, []any, error) {
	if len(conflict) == 0 {
		return "", nil, fmt.Errorf("upsert %s: conflict columns are required", table)
	}
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	key := make(map[string]struct{}, len(conflict))
	for _, col := range conflict {
		key[col] = struct{}{}
	}
	update := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, ok := key[col]; ok {
			continue
		}
		update = append(update, col)
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		OnConflictDoUpdate(conflict, update).
		ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
