package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRef(t *testing.T) {
	t.Run("UnmarshalBareID", func(t *testing.T) {
		var b Booking
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","vendorId":"v1"}`), &b))

		assert.Equal(t, "v1", b.Vendor.ID())
		_, ok := b.Vendor.Populated()
		assert.False(t, ok)
	})

	t.Run("UnmarshalPopulatedObject", func(t *testing.T) {
		var b Booking
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","vendorId":{"_id":"v1","name":"DJ","price":5000}}`), &b))

		assert.Equal(t, "v1", b.Vendor.ID())
		vendor, ok := b.Vendor.Populated()
		require.True(t, ok)
		assert.Equal(t, "DJ", vendor.Name)
		assert.Equal(t, float64(5000), vendor.Price)
	})

	t.Run("MarshalBareIDStaysBare", func(t *testing.T) {
		b := Booking{ID: "b1", Vendor: VendorID("v1"), UserName: "A", UserEmail: "a@b.com", EventDate: "2026-09-01"}
		data, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"vendorId":"v1"`)
	})

	t.Run("MarshalPopulatedStaysPopulated", func(t *testing.T) {
		b := Booking{Vendor: PopulatedVendor(&Vendor{ID: "v1", Name: "DJ"})}
		data, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"vendorId":{`)
		assert.Contains(t, string(data), `"name":"DJ"`)
	})

	t.Run("Zero", func(t *testing.T) {
		var r VendorRef
		assert.True(t, r.IsZero())
		assert.False(t, VendorID("v1").IsZero())
		assert.True(t, PopulatedVendor(nil).IsZero())
	})
}

func TestCategoryRef(t *testing.T) {
	t.Run("UnmarshalBothShapes", func(t *testing.T) {
		var v Vendor
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"v1","categoryId":"c1"}`), &v))
		assert.Equal(t, "c1", v.Category.ID())

		require.NoError(t, json.Unmarshal([]byte(`{"_id":"v1","categoryId":{"_id":"c1","name":"Catering"}}`), &v))
		category, ok := v.Category.Populated()
		require.True(t, ok)
		assert.Equal(t, "Catering", category.Name)
	})

	t.Run("InvalidShapeRejected", func(t *testing.T) {
		var v Vendor
		err := json.Unmarshal([]byte(`{"_id":"v1","categoryId":42}`), &v)
		assert.Error(t, err)
	})
}

func TestFlowStateData(t *testing.T) {
	state := FlowState{SessionID: "s1", Step: "order_created", Data: map[string]interface{}{
		"email":  "a@b.com",
		"amount": 5000,
	}}

	// Через JSON числа становятся float64; геттеры обязаны это переживать
	data, err := json.Marshal(state)
	require.NoError(t, err)
	var decoded FlowState
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "a@b.com", decoded.GetString("email"))
	assert.Equal(t, float64(5000), decoded.GetFloat64("amount"))
	assert.Empty(t, decoded.GetString("missing"))
}
