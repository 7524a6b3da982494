package sqlstore

import (
	"fmt"
	"strings"

	"github.com/storeldb/storeapi/internal/api/util"
)

// datetimeFields defines fields that contain datetime values. Their filter
// values are parsed into time.Time so the driver encodes them the same way
// it encodes stored dates.
var datetimeFields = map[string]bool{
	"orderdate": true,
}

func isDatetimeField(field string) bool {
	return datetimeFields[field]
}

func filterValue(field string, value interface{}) interface{} {
	if !isDatetimeField(field) {
		return value
	}
	if strVal, ok := value.(string); ok {
		if t, err := util.ParseDateTime(strVal); err == nil {
			return t
		}
	}
	return value
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilterClause builds a SQL WHERE clause from a QueryFilter. lower names
// the function used for case-insensitive matches.
func BuildFilterClause(f util.QueryFilter, lower string) (string, []interface{}) {
	value := filterValue(f.Field, f.Value)

	switch f.Operator {
	case util.OpEq:
		return fmt.Sprintf("%s = ?", f.Field), []interface{}{value}
	case util.OpNe:
		return fmt.Sprintf("%s != ?", f.Field), []interface{}{value}
	case util.OpGt:
		return fmt.Sprintf("%s > ?", f.Field), []interface{}{value}
	case util.OpGte:
		return fmt.Sprintf("%s >= ?", f.Field), []interface{}{value}
	case util.OpLt:
		return fmt.Sprintf("%s < ?", f.Field), []interface{}{value}
	case util.OpLte:
		return fmt.Sprintf("%s <= ?", f.Field), []interface{}{value}
	case util.OpIsNull:
		return fmt.Sprintf("%s IS NULL", f.Field), nil
	case util.OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", f.Field), nil
	case util.OpIsBlank:
		return fmt.Sprintf("(%s IS NULL OR %s = '')", f.Field, f.Field), nil
	case util.OpIStartsWith:
		prefix := strings.ToLower(likeEscaper.Replace(fmt.Sprint(f.Value))) + "%"
		return fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, lower, f.Field), []interface{}{prefix}
	case util.OpIn:
		return listClause(f, "IN")
	case util.OpNin:
		return listClause(f, "NOT IN")
	default:
		return "", nil
	}
}

func listClause(f util.QueryFilter, op string) (string, []interface{}) {
	values, ok := f.Value.([]string)
	if !ok || len(values) == 0 {
		return "", nil
	}
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = filterValue(f.Field, v)
	}
	return fmt.Sprintf("%s %s (%s)", f.Field, op, strings.Join(placeholders, ", ")), args
}

// ApplyFilters applies QueryFilters to a query and returns the modified query and args
func ApplyFilters(query string, args []interface{}, filters []util.QueryFilter, lower string) (string, []interface{}) {
	for _, f := range filters {
		clause, filterArgs := BuildFilterClause(f, lower)
		if clause != "" {
			query += " AND " + clause
			args = append(args, filterArgs...)
		}
	}
	return query, args
}

// ApplyOrdering applies OrderClauses to a query
func ApplyOrdering(query string, orders []util.OrderClause, defaultOrder string) string {
	if len(orders) > 0 {
		orderClauses := make([]string, 0, len(orders))
		for _, o := range orders {
			direction := "ASC"
			if o.Direction == util.OrderDesc {
				direction = "DESC"
			}
			orderClauses = append(orderClauses, fmt.Sprintf("%s %s", o.Field, direction))
		}
		return query + " ORDER BY " + strings.Join(orderClauses, ", ")
	}
	return query + " ORDER BY " + defaultOrder
}

// ApplyPagination applies page/perPage to a query
func ApplyPagination(query string, args []interface{}, page, perPage int) (string, []interface{}) {
	if perPage > 0 {
		query += " LIMIT ?"
		args = append(args, perPage)

		if page > 1 {
			offset := (page - 1) * perPage
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}
	return query, args
}
