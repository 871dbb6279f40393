package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lamdn/circura/internal/catalog"
)

func TestService_RegisterBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)

	ok := catalog.CreateParams{EditionCode: "TN-2019-01", CopyNumber: 3, Price: 120000}
	unknown := catalog.CreateParams{EditionCode: "XX-0000-00", CopyNumber: 1, Price: 90000}
	dup := catalog.CreateParams{EditionCode: "TN-2019-01", CopyNumber: 1, Price: 120000}
	blank := catalog.CreateParams{CopyNumber: 2, Price: 50000}

	repo.EXPECT().CreateCopy(gomock.Any(), ok).Return(&catalog.Copy{ID: uuid.New(), CopyNumber: 3, Price: 120000}, nil)
	repo.EXPECT().CreateCopy(gomock.Any(), unknown).Return(nil, catalog.ErrUnknownEdition)
	repo.EXPECT().CreateCopy(gomock.Any(), dup).Return(nil, catalog.ErrDuplicateCopy)

	svc := catalog.NewService(repo)

	result, err := svc.RegisterBatch(context.Background(), []catalog.CreateParams{ok, unknown, dup, blank})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	require.Len(t, result.Failed, 3)
	assert.Equal(t, "unknown edition code", result.Failed[0].Reason)
	assert.Equal(t, "copy number already registered", result.Failed[1].Reason)
	assert.Equal(t, "edition code is required", result.Failed[2].Reason)
}

func TestService_RegisterBatch_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().CreateCopy(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	svc := catalog.NewService(repo)

	result, err := svc.RegisterBatch(context.Background(), []catalog.CreateParams{
		{EditionCode: "TN-2019-01", CopyNumber: 1, Price: 120000},
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().UpdateCopyStatus(gomock.Any(), id, catalog.StatusDamaged).Return(nil)

	svc := catalog.NewService(repo)

	require.NoError(t, svc.UpdateStatus(context.Background(), id, catalog.StatusDamaged))
	assert.Error(t, svc.UpdateStatus(context.Background(), id, catalog.CopyStatus("missing")))
}
