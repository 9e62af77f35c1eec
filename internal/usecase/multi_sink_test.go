package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/tellerledger/internal/domain"
	"github.com/iho/tellerledger/internal/usecase"
	"github.com/iho/tellerledger/internal/usecase/mocks"
)

func TestMultiSink_FansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockAuditSink(ctrl)
	second := mocks.NewMockAuditSink(ctrl)

	rec := &domain.AuditRecord{Operation: domain.AuditOperationDeposit, Outcome: domain.OutcomeApplied}
	first.EXPECT().Record(gomock.Any(), rec).Return(nil)
	second.EXPECT().Record(gomock.Any(), rec).Return(nil)

	sink := usecase.NewMultiSink(nil)
	sink.Add("first", first)
	sink.Add("second", second)

	require.NoError(t, sink.Record(context.Background(), rec))
	assert.Equal(t, 2, sink.Len())
}

func TestMultiSink_FailureDoesNotStopOtherSinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	broken := mocks.NewMockAuditSink(ctrl)
	healthy := mocks.NewMockAuditSink(ctrl)

	errDisk := errors.New("disk full")
	broken.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errDisk)
	healthy.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	var failed []string
	sink := usecase.NewMultiSink(func(name string, err error) {
		failed = append(failed, name)
	})
	sink.Add("file", broken)
	sink.Add("log", healthy)

	err := sink.Record(context.Background(), &domain.AuditRecord{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), "file")
	assert.Equal(t, []string{"file"}, failed)
}

func TestMultiSink_Empty(t *testing.T) {
	sink := usecase.NewMultiSink(nil)
	assert.NoError(t, sink.Record(context.Background(), &domain.AuditRecord{}))
}
