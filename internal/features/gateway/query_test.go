package gateway

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseResourceQuery_WhenNoParams_UsesDefaults(t *testing.T) {
	query, apiErr := ParseResourceQuery(url.Values{})

	require.Nil(t, apiErr)
	assert.Equal(t, DefaultPageLimit, query.Limit)
	assert.Nil(t, query.Cursor)
	assert.Empty(t, query.Filters)
	assert.Empty(t, query.Includes)
}

func Test_ParseResourceQuery_WhenLimitVariants_Clamps(t *testing.T) {
	cases := map[string]int{
		"10":   10,
		"100":  100,
		"101":  MaxPageLimit,
		"0":    DefaultPageLimit,
		"-3":   DefaultPageLimit,
		"abc":  DefaultPageLimit,
		"":     DefaultPageLimit,
		"9999": MaxPageLimit,
	}

	for raw, expected := range cases {
		values := url.Values{}
		if raw != "" {
			values.Set("limit", raw)
		}

		query, apiErr := ParseResourceQuery(values)
		require.Nil(t, apiErr)
		assert.Equal(t, expected, query.Limit, "limit=%q", raw)
	}
}

func Test_ParseResourceQuery_WhenSuffixOperators_SelectsOp(t *testing.T) {
	values := url.Values{}
	values.Set("stock_quantity_lte", "5")
	values.Set("price_gte", "10")
	values.Set("name_like", "ana")
	values.Set("status", "pending")

	query, apiErr := ParseResourceQuery(values)
	require.Nil(t, apiErr)
	require.Len(t, query.Filters, 4)

	byColumn := map[string]Filter{}
	for _, filter := range query.Filters {
		byColumn[filter.Column] = filter
	}

	assert.Equal(t, FilterOpLte, byColumn["stock_quantity"].Op)
	assert.Equal(t, FilterOpGte, byColumn["price"].Op)
	assert.Equal(t, FilterOpLike, byColumn["name"].Op)
	assert.Equal(t, FilterOpEq, byColumn["status"].Op)
}

func Test_ParseResourceQuery_WhenCustomFieldsKey_TargetsNestedField(t *testing.T) {
	values := url.Values{}
	values.Set("custom_fields.segment", "enterprise")

	query, apiErr := ParseResourceQuery(values)
	require.Nil(t, apiErr)
	require.Len(t, query.Filters, 1)

	filter := query.Filters[0]
	assert.Equal(t, FilterOpJSONEq, filter.Op)
	assert.Equal(t, "custom_fields", filter.Column)
	assert.Equal(t, "segment", filter.JSONField)
	assert.Equal(t, "enterprise", filter.Value)
}

func Test_ParseResourceQuery_WhenFilterKeyNotAnIdentifier_Returns400(t *testing.T) {
	for _, key := range []string{"name;drop", "na me", "1name", "custom_fields.seg ment", "Name"} {
		values := url.Values{}
		values.Set(key, "x")

		_, apiErr := ParseResourceQuery(values)
		require.NotNil(t, apiErr, "key %q should be rejected", key)
		assert.Equal(t, 400, apiErr.Status)
	}
}

func Test_ParseResourceQuery_WhenCursorGiven_ParsesTimestamp(t *testing.T) {
	moment := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

	values := url.Values{}
	values.Set("cursor", moment.Format(time.RFC3339Nano))

	query, apiErr := ParseResourceQuery(values)
	require.Nil(t, apiErr)
	require.NotNil(t, query.Cursor)
	assert.True(t, query.Cursor.Equal(moment))
}

func Test_ParseResourceQuery_WhenCursorMalformed_Returns400(t *testing.T) {
	values := url.Values{}
	values.Set("cursor", "not-a-timestamp")

	_, apiErr := ParseResourceQuery(values)
	require.NotNil(t, apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func Test_ParseResourceQuery_WhenIncludeList_SplitsAndTrims(t *testing.T) {
	values := url.Values{}
	values.Set("include", "contact, card ,")

	query, apiErr := ParseResourceQuery(values)
	require.Nil(t, apiErr)
	assert.Equal(t, []string{"contact", "card"}, query.Includes)
}
