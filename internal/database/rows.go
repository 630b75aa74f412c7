package database

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row maps column names to scalar values, keeping the column order the
// driver reported. It marshals to a JSON object with keys in that order.
type Row = *orderedmap.OrderedMap[string, any]

// ResultSet is the ordered sequence of rows returned by a query.
type ResultSet []Row

// MarshalJSON encodes the result set as a JSON array. A nil set encodes as [].
func (r ResultSet) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Row(r))
}

// scanRows materializes every remaining row.
func scanRows(rows *sql.Rows, columns []*sql.ColumnType) (ResultSet, error) {
	result := make(ResultSet, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range columns {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}

		row := orderedmap.New[string, any]()
		for i, col := range columns {
			row.Set(col.Name(), normalizeValue(values[i], col.DatabaseTypeName()))
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// normalizeValue converts raw driver bytes into JSON friendly scalars based on
// the column's database type. DECIMAL and NUMERIC stay strings to keep their
// precision. Binary columns stay []byte and encode as base64.
func normalizeValue(value any, databaseType string) any {
	raw, ok := value.([]byte)
	if !ok {
		return value
	}

	typ := strings.ToUpper(databaseType)
	if isBinaryType(typ) {
		return raw
	}
	s := string(raw)

	switch {
	case strings.Contains(typ, "INT") || typ == "YEAR":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n
		}
	case typ == "FLOAT" || typ == "DOUBLE" || typ == "REAL" || typ == "FLOAT4" || typ == "FLOAT8":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case typ == "BOOL" || typ == "BOOLEAN":
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}

	return s
}

func isBinaryType(typ string) bool {
	switch typ {
	case "BINARY", "VARBINARY", "BYTEA", "BIT", "GEOMETRY":
		return true
	}
	return strings.HasSuffix(typ, "BLOB")
}
