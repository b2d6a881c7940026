package listingrepo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kashh99/closet-backend/util/fault"
)

func TestBuildWhere_AlwaysActive(t *testing.T) {
	where, args, err := buildWhere(nil)
	require.NoError(t, err)
	require.Equal(t, "WHERE is_active = TRUE", where)
	require.Empty(t, args)
}

func TestBuildWhere_Clauses(t *testing.T) {
	where, args, err := buildWhere([]Clause{
		{Field: "category", Op: OpEq, Value: "Dress"},
		{Field: "daily_price", Op: OpLte, Value: "25"},
		{Field: "size", Op: OpIn, Values: []string{"S", "M"}},
	})
	require.NoError(t, err)
	require.Equal(t,
		"WHERE is_active = TRUE AND category = $1 AND daily_price <= $2 AND size = ANY($3)",
		where)
	require.Len(t, args, 3)
	require.Equal(t, "Dress", args[0])
	require.Equal(t, []string{"S", "M"}, args[2])
}

func TestBuildWhere_RejectsUnknownField(t *testing.T) {
	// Only allow-listed columns may appear, no matter what the client sends.
	_, _, err := buildWhere([]Clause{{Field: "password_hash", Op: OpEq, Value: "x"}})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))

	_, _, err = buildWhere([]Clause{{Field: "1=1; DROP TABLE listings", Op: OpEq, Value: "x"}})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestBuildWhere_EmptyIn(t *testing.T) {
	_, _, err := buildWhere([]Clause{{Field: "size", Op: OpIn}})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))
}

func TestBuildOrder(t *testing.T) {
	order, err := buildOrder(nil)
	require.NoError(t, err)
	require.Equal(t, "ORDER BY created_at DESC, id DESC", order)

	order, err = buildOrder([]SortKey{{Field: "daily_price", Desc: true}, {Field: "title"}})
	require.NoError(t, err)
	require.Equal(t, "ORDER BY daily_price DESC, title ASC", order)

	_, err = buildOrder([]SortKey{{Field: "owner_id"}})
	require.Error(t, err)
	require.Equal(t, fault.Validation, fault.KindOf(err))
}
