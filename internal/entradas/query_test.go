package entradas_test

import (
	"testing"

	"github.com/almoxarifado/almox/internal/entradas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_OnlyPageAndSize(t *testing.T) {
	q := entradas.BuildQuery(entradas.FilterCriteria{}, entradas.PageState{Index: 0, Size: 10})
	assert.Equal(t, "page=0&size=10", q.Encode())
}

func TestBuildQuery_AllFilters(t *testing.T) {
	f := entradas.FilterCriteria{
		ProductID: "42",
		Name:      "parafuso",
		Period:    entradas.PeriodMonth,
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	}
	params := entradas.OrderedQuery(f, entradas.PageState{Index: 2, Size: 10})

	assert.Equal(t, []entradas.Param{
		{Key: "produtoId", Value: "42"},
		{Key: "periodo", Value: "mes"},
		{Key: "dataInicio", Value: "2025-01-01"},
		{Key: "dataFim", Value: "2025-01-31"},
		{Key: "page", Value: "2"},
		{Key: "size", Value: "10"},
	}, params)
	assert.Equal(t, "produtoId=42&periodo=mes&dataInicio=2025-01-01&dataFim=2025-01-31&page=2&size=10",
		entradas.QueryString(params))
}

func TestBuildQuery_NameNeverSent(t *testing.T) {
	q := entradas.BuildQuery(entradas.FilterCriteria{Name: "luva"}, entradas.PageState{Size: 10})
	for key := range q {
		assert.NotContains(t, []string{"nome", "name"}, key)
	}
}

func TestBuildQuery_HalfDateRangeOmitsBoth(t *testing.T) {
	for _, f := range []entradas.FilterCriteria{
		{StartDate: "2025-01-01"},
		{EndDate: "2025-01-31"},
		{ProductID: "3", StartDate: "2025-01-01"},
		{Period: entradas.PeriodYear, EndDate: "2025-01-31"},
	} {
		q := entradas.BuildQuery(f, entradas.PageState{Size: 10})
		assert.False(t, q.Has(entradas.ParamStartDate), "%+v", f)
		assert.False(t, q.Has(entradas.ParamEndDate), "%+v", f)
		assert.True(t, q.Has(entradas.ParamPage))
		assert.True(t, q.Has(entradas.ParamSize))
	}
}

func TestBuildQuery_ForwardsMalformedInput(t *testing.T) {
	f := entradas.FilterCriteria{ProductID: "abc", StartDate: "2025-12-31", EndDate: "2025-01-01"}
	q := entradas.BuildQuery(f, entradas.PageState{Size: 10})
	assert.Equal(t, "abc", q.Get(entradas.ParamProductID))
	assert.Equal(t, "2025-12-31", q.Get(entradas.ParamStartDate), "no ordering check")
	assert.Equal(t, "2025-01-01", q.Get(entradas.ParamEndDate))
}

func TestParsePeriod(t *testing.T) {
	cases := map[string]entradas.Period{
		"":       entradas.PeriodNone,
		"none":   entradas.PeriodNone,
		"week":   entradas.PeriodWeek,
		"semana": entradas.PeriodWeek,
		"Month":  entradas.PeriodMonth,
		"mês":    entradas.PeriodMonth,
		"ano":    entradas.PeriodYear,
	}
	for in, want := range cases {
		got, err := entradas.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := entradas.ParsePeriod("decade")
	assert.Error(t, err)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Última semana", entradas.PeriodWeek.Label())
	assert.Equal(t, "Qualquer período", entradas.PeriodNone.Label())
}
