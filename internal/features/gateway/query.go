package gateway

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	time_parser "github.com/git-webzoom/assistente-x-hub/internal/util/time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// FilterOp enumerates the operators the query-string suffix conventions map
// onto.
type FilterOp int

const (
	FilterOpEq FilterOp = iota
	FilterOpGte
	FilterOpLte
	FilterOpLike
	FilterOpJSONEq
)

type Filter struct {
	Column string
	Op     FilterOp
	Value  string

	// JSONField is set only for FilterOpJSONEq: the key inside the
	// Column JSON document to compare against.
	JSONField string
}

// ResourceQuery is the normalized form of a gateway list request.
type ResourceQuery struct {
	Limit    int
	Cursor   *time.Time
	Filters  []Filter
	Includes []string
}

var reservedQueryKeys = map[string]bool{
	"limit":   true,
	"cursor":  true,
	"include": true,
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

const customFieldsPrefix = "custom_fields."

// ParseResourceQuery normalizes the raw query string. Every key that is not
// reserved becomes a filter; suffixes _gte, _lte and _like select the
// operator and custom_fields.<name> targets a key of the JSON column.
// Malformed filter keys and cursors are rejected as 400, never passed to
// storage raw.
func ParseResourceQuery(values url.Values) (*ResourceQuery, *ApiError) {
	query := &ResourceQuery{Limit: parseLimit(values.Get("limit"))}

	if raw := values.Get("cursor"); raw != "" {
		cursor, err := time_parser.ParseTimestamp(raw)
		if err != nil {
			return nil, NewApiError(400, "Invalid cursor")
		}
		query.Cursor = &cursor
	}

	if raw := values.Get("include"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				query.Includes = append(query.Includes, name)
			}
		}
	}

	for key := range values {
		if reservedQueryKeys[key] {
			continue
		}

		filter, apiErr := parseFilter(key, values.Get(key))
		if apiErr != nil {
			return nil, apiErr
		}

		query.Filters = append(query.Filters, filter)
	}

	return query, nil
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return DefaultPageLimit
	}

	if limit > MaxPageLimit {
		return MaxPageLimit
	}

	return limit
}

func parseFilter(key, value string) (Filter, *ApiError) {
	if strings.HasPrefix(key, customFieldsPrefix) {
		fieldName := key[len(customFieldsPrefix):]
		if !identifierPattern.MatchString(fieldName) {
			return Filter{}, NewApiError(400, "Invalid filter key: "+key)
		}

		return Filter{Column: "custom_fields", Op: FilterOpJSONEq, Value: value, JSONField: fieldName}, nil
	}

	filter := Filter{Column: key, Op: FilterOpEq, Value: value}

	switch {
	case strings.HasSuffix(key, "_gte"):
		filter.Column = strings.TrimSuffix(key, "_gte")
		filter.Op = FilterOpGte
	case strings.HasSuffix(key, "_lte"):
		filter.Column = strings.TrimSuffix(key, "_lte")
		filter.Op = FilterOpLte
	case strings.HasSuffix(key, "_like"):
		filter.Column = strings.TrimSuffix(key, "_like")
		filter.Op = FilterOpLike
	}

	if !identifierPattern.MatchString(filter.Column) {
		return Filter{}, NewApiError(400, "Invalid filter key: "+key)
	}

	return filter, nil
}

// ApplyFilters appends the parsed filters to a gorm query. Column names
// have already been validated against identifierPattern, so interpolating
// them into condition strings is safe.
func ApplyFilters(query *gorm.DB, filters []Filter) *gorm.DB {
	for _, filter := range filters {
		switch filter.Op {
		case FilterOpGte:
			query = query.Where(filter.Column+" >= ?", filter.Value)
		case FilterOpLte:
			query = query.Where(filter.Column+" <= ?", filter.Value)
		case FilterOpLike:
			query = query.Where("LOWER("+filter.Column+") LIKE ?", "%"+strings.ToLower(filter.Value)+"%")
		case FilterOpJSONEq:
			query = query.Where(datatypes.JSONQuery(filter.Column).Equals(filter.Value, filter.JSONField))
		default:
			query = query.Where(filter.Column+" = ?", filter.Value)
		}
	}

	return query
}
