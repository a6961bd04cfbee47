package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `<html><body>
<a class="c-midnight-100" href="/products/example-product">Example Product</a>
<a class="link js-log-click" href="https://www.g2.com/products/example-product/reviews#reviews">(1,024 reviews)</a>
<div class="center-center fw-semibold text-medium" style="color: #ff492c">4.5</div>
<div class="center-center fw-semibold text-medium" style="color: #5a39a2">4.7</div>
<div class="center-center fw-semibold text-medium" style="color: #5a39a2">4.2</div>
</body></html>`

func TestExtractDefaultSelectors(t *testing.T) {
	record, err := Extract(fixturePage, DefaultSelectors())
	require.NoError(t, err)

	tests := []struct {
		field string
		want  string
	}{
		{FieldTitle, "Example Product"},
		{FieldReviews, "(1,024 reviews)"},
		{FieldEaseUse, "4.5"},
		{FieldQualitySupport, "4.7"},
		{FieldEaseSetup, "4.2"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := record.Get(tt.field)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMissingSelectorLeavesFieldAbsent(t *testing.T) {
	// Fixture without the ease-of-use score element.
	page := `<html><body>
	<a class="c-midnight-100" href="/products/example-product">Example Product</a>
	<div class="center-center fw-semibold text-medium" style="color: #5a39a2">4.7</div>
	</body></html>`

	record, err := Extract(page, DefaultSelectors())
	require.NoError(t, err)

	assert.True(t, record.Has(FieldTitle))
	assert.True(t, record.Has(FieldQualitySupport))
	assert.False(t, record.Has(FieldEaseUse))
	assert.False(t, record.Has(FieldReviews))

	// The shared-query second match is gone too.
	assert.False(t, record.Has(FieldEaseSetup))
}

func TestExtractIndexBeyondMatches(t *testing.T) {
	page := `<html><body><p class="score">3.9</p></body></html>`

	record, err := Extract(page, []FieldSelector{
		{Name: "first", Query: "p.score", Index: 0},
		{Name: "second", Query: "p.score", Index: 1},
		{Name: "negative", Query: "p.score", Index: -1},
	})
	require.NoError(t, err)

	got, ok := record.Get("first")
	assert.True(t, ok)
	assert.Equal(t, "3.9", got)
	assert.False(t, record.Has("second"))
	assert.False(t, record.Has("negative"))
}

func TestExtractTrimsWhitespace(t *testing.T) {
	page := `<html><body><h1 class="name">
		Example Product
	</h1></body></html>`

	record, err := Extract(page, []FieldSelector{{Name: "name", Query: "h1.name"}})
	require.NoError(t, err)

	got, _ := record.Get("name")
	assert.Equal(t, "Example Product", got)
}

func TestExtractEmptyElementIsPresent(t *testing.T) {
	// A selector that matched an empty element still counts as extracted;
	// absence means the selector matched nothing at all.
	page := `<html><body><span class="blank"></span></body></html>`

	record, err := Extract(page, []FieldSelector{{Name: "blank", Query: "span.blank"}})
	require.NoError(t, err)

	got, ok := record.Get("blank")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestExtractIsDeterministic(t *testing.T) {
	first, err := Extract(fixturePage, DefaultSelectors())
	require.NoError(t, err)

	second, err := Extract(fixturePage, DefaultSelectors())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
