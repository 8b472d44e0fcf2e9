package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/domain/catalogs/store"
)

func TestParseID(t *testing.T) {
	want := id.New()

	got, err := ParseID("productId", want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseID("productId", "not-a-uuid")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "productId", appErr.Details["field"])
}

func TestParseOptionalID(t *testing.T) {
	got, err := ParseOptionalID("accountId", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseOptionalID("accountId", &empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := id.New()
	s := want.String()
	got, err = ParseOptionalID("accountId", &s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	bad := "xyz"
	_, err = ParseOptionalID("accountId", &bad)
	assert.Error(t, err)
}

func TestParseStoreID(t *testing.T) {
	// Store-bound users leave the field empty; the nil ID means
	// "resolve from scope".
	got, err := ParseStoreID("")
	require.NoError(t, err)
	assert.True(t, id.IsNil(got))

	want := id.New()
	got, err = ParseStoreID(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreateStockEntryRequestToInput(t *testing.T) {
	supplierID := id.New()
	warehouseID := id.New()
	productID := id.New()

	req := CreateStockEntryRequest{
		SupplierID:  supplierID.String(),
		WarehouseID: warehouseID.String(),
		Items: []StockEntryItemRequest{
			{ProductID: productID.String(), Quantity: 5},
		},
	}

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.True(t, id.IsNil(in.StoreID))
	assert.Equal(t, supplierID, in.SupplierID)
	assert.Equal(t, warehouseID, in.WarehouseID)
	assert.Nil(t, in.AccountID)
	require.Len(t, in.Items, 1)
	assert.Equal(t, productID, in.Items[0].ProductID)
	assert.EqualValues(t, 5, in.Items[0].Quantity)
}

func TestCreateStockEntryRequestToInputBadItem(t *testing.T) {
	req := CreateStockEntryRequest{
		SupplierID:  id.New().String(),
		WarehouseID: id.New().String(),
		Items: []StockEntryItemRequest{
			{ProductID: "garbage", Quantity: 1},
		},
	}

	_, err := req.ToInput()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "productId", appErr.Details["field"])
}

func TestUpdateStoreRequestApplyTo(t *testing.T) {
	st := store.NewStore("MAIN", "Main store")
	st.Version = 3

	newName := "Renamed"
	inactive := false
	req := UpdateStoreRequest{
		Name:     &newName,
		IsActive: &inactive,
		Version:  3,
	}
	req.ApplyTo(st)

	assert.Equal(t, "Renamed", st.Name)
	assert.False(t, st.IsActive)
	assert.Nil(t, st.Description)
	assert.Equal(t, 3, st.Version)
}
