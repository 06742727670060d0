package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/Apurer/go-gin-order-service/internal/domains/products/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotal(t *testing.T) {
	cases := []struct {
		name  string
		lines []LineItem
		want  string
	}{
		{"half cents round away from zero", []LineItem{{Name: "A", Quantity: 1, Price: dec("1.005")}, {Name: "B", Quantity: 1, Price: dec("2.005")}}, "3.01"},
		{"quantity multiplies price", []LineItem{{Name: "A", Quantity: 2, Price: dec("3.50")}}, "7.00"},
		{"below half rounds down", []LineItem{{Name: "A", Quantity: 3, Price: dec("0.3333")}}, "1.00"},
		{"free items", []LineItem{{Name: "A", Quantity: 5}}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := &Order{Products: tc.lines}
			assert.True(t, dec(tc.want).Equal(order.ComputeTotal()), "got %s", order.ComputeTotal())
		})
	}
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder(nil)
	require.ErrorIs(t, err, ErrNoProducts)

	_, err = NewOrder([]LineItem{{Name: "  ", Quantity: 1}})
	require.ErrorIs(t, err, ErrEmptyProductName)

	_, err = NewOrder([]LineItem{{Name: "A", Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	order, err := NewOrder([]LineItem{{Name: " A ", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, "A", order.Products[0].Name)
}

func TestCloneDoesNotShareLineItems(t *testing.T) {
	order := &Order{ID: 1, Products: []LineItem{{Name: "A", Quantity: 1}}}
	clone := order.Clone()
	clone.Products[0].Price = dec("9.99")
	assert.True(t, order.Products[0].Price.IsZero())
}

func TestItemsAndProductNames(t *testing.T) {
	order := &Order{Products: []LineItem{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 2}, {Name: "A", Quantity: 3}}}
	assert.Equal(t, []productdomain.Item{{Name: "A", Quantity: 4}, {Name: "B", Quantity: 2}}, order.Items())
	assert.Equal(t, []string{"A", "B"}, order.ProductNames())
}

func TestFilterMatches(t *testing.T) {
	id := int64(2)
	total := dec("7.00")
	order := &Order{ID: 2, Products: []LineItem{{Name: "A", Quantity: 2}}, Total: dec("7")}

	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{}.Matches(order))
	assert.True(t, Filter{ID: &id, Total: &total, ProductName: "A"}.Matches(order))
	assert.False(t, Filter{ProductName: "B"}.Matches(order))
	other := int64(3)
	assert.False(t, Filter{ID: &other}.Matches(order))
}
