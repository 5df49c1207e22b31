package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdbstore/internal/repositories"
	"pdbstore/internal/services"
	"pdbstore/internal/testutil"
	"pdbstore/internal/utils"
)

func TestCoordinateService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCoordinateService(testutil.NewCoordinateStore())

	req := &services.CreateCoordinateRequest{
		ID:      utils.Ptr("101M_1_A_1"),
		PDB:     utils.Ptr("101M"),
		PDBType: utils.Ptr("ATOM"),
		Model:   utils.Ptr(1),
		Chain:   utils.Ptr("A"),
		Number:  utils.Ptr(1),
		Unit:    utils.Ptr("MET"),
		InsCode: utils.Ptr(""),
		Index:   utils.Ptr(0),
	}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "101M_1_A_1")
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "", *got.InsCode)
	assert.Equal(t, 0, *got.Index)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, repositories.ErrUniquenessViolation)
}

func TestCoordinateService_RejectsMissingID(t *testing.T) {
	svc := services.NewCoordinateService(testutil.NewCoordinateStore())

	for name, id := range map[string]*string{"absent": nil, "empty": utils.Ptr("")} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &services.CreateCoordinateRequest{ID: id, PDB: utils.Ptr("101M")})
			assert.ErrorIs(t, err, repositories.ErrNullPrimaryKey)
		})
	}
}

func TestCoordinateService_Get(t *testing.T) {
	svc := services.NewCoordinateService(testutil.NewCoordinateStore())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, services.ErrInvalidRequest)

	_, err = svc.Get(context.Background(), "101M_1_A_1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCoordinateService_KeepsWhitespace(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCoordinateService(testutil.NewCoordinateStore())

	_, err := svc.Create(ctx, &services.CreateCoordinateRequest{
		ID:    utils.Ptr(" X"),
		PDB:   utils.Ptr("1ABC"),
		Chain: utils.Ptr(" "),
		Unit:  utils.Ptr(" CA "),
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "X")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	got, err := svc.Get(ctx, " X")
	require.NoError(t, err)
	assert.Equal(t, " X", got.ID)
	assert.Equal(t, " ", *got.Chain)
	assert.Equal(t, " CA ", *got.Unit)
}

func TestCoordinateService_IntegerRange(t *testing.T) {
	svc := services.NewCoordinateService(testutil.NewCoordinateStore())

	for name, req := range map[string]*services.CreateCoordinateRequest{
		"model":  {ID: utils.Ptr("a"), Model: utils.Ptr(2147483648)},
		"number": {ID: utils.Ptr("b"), Number: utils.Ptr(-2147483649)},
		"index":  {ID: utils.Ptr("c"), Index: utils.Ptr(1 << 40)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, services.ErrInvalidRequest)
			assert.Contains(t, err.Error(), name)
		})
	}
}
