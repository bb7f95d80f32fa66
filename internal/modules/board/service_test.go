package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmboard/internal/domain"
	"crmboard/internal/repository"
)

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) LeadCountsByStage(ctx context.Context, companyID, pipelineID int64) ([]repository.StageLeadCount, error) {
	args := m.Called(ctx, companyID, pipelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StageLeadCount), args.Error(1)
}

func (m *MockStatsProvider) PipelineTotals(ctx context.Context, companyID, pipelineID int64) (*repository.PipelineTotals, error) {
	args := m.Called(ctx, companyID, pipelineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PipelineTotals), args.Error(1)
}

func serviceFixture(t *testing.T) (*Service, *MockStageStore, *MockLeadStore) {
	t.Helper()

	stages := new(MockStageStore)
	leads := new(MockLeadStore)

	stageRows := []domain.Stage{
		{ID: 100, PipelineID: testPipeline, CompanyID: testCompany, Name: "Prospecting", Position: 0},
		{ID: 200, PipelineID: testPipeline, CompanyID: testCompany, Name: "Qualification", Position: 1},
	}
	stages.On("ListByPipeline", mock.Anything, testCompany, testPipeline).Return(stageRows, nil)
	leads.On("ListByStage", mock.Anything, testCompany, int64(100)).Return([]domain.Lead{leadFixture(1, 100)}, nil)
	leads.On("ListByStage", mock.Anything, testCompany, int64(200)).Return(nil, nil)

	return NewService(stages, leads, new(MockStatsProvider), nil), stages, leads
}

func TestService_BoardLoadsOnceAndCaches(t *testing.T) {
	svc, stages, _ := serviceFixture(t)

	b1, err := svc.Board(context.Background(), testCompany, testPipeline)
	require.NoError(t, err)
	b2, err := svc.Board(context.Background(), testCompany, testPipeline)
	require.NoError(t, err)

	assert.Equal(t, b1.Stages, b2.Stages)
	stages.AssertNumberOfCalls(t, "ListByPipeline", 1)
}

func TestService_InvalidateDropsTheController(t *testing.T) {
	svc, stages, _ := serviceFixture(t)

	_, err := svc.Board(context.Background(), testCompany, testPipeline)
	require.NoError(t, err)

	svc.Invalidate(testCompany, testPipeline)

	_, err = svc.Board(context.Background(), testCompany, testPipeline)
	require.NoError(t, err)
	stages.AssertNumberOfCalls(t, "ListByPipeline", 2)
}

func TestService_MoveLeadToForeignPipelineIsRejected(t *testing.T) {
	svc, stages, _ := serviceFixture(t)

	// stage 999 exists, but under another pipeline of the same company
	stages.On("GetByID", mock.Anything, testCompany, int64(999)).
		Return(&domain.Stage{ID: 999, PipelineID: 20, CompanyID: testCompany}, nil)

	_, err := svc.MoveLead(context.Background(), testCompany, testPipeline, 1, 100, 999, 0)
	assert.ErrorIs(t, err, ErrCrossPipeline)
}

func TestService_MoveLeadToMissingStageIsNotFound(t *testing.T) {
	svc, stages, _ := serviceFixture(t)

	stages.On("GetByID", mock.Anything, testCompany, int64(999)).Return(nil, nil)

	_, err := svc.MoveLead(context.Background(), testCompany, testPipeline, 1, 100, 999, 0)
	assert.ErrorIs(t, err, ErrStageNotFound)
}

func TestService_Stats(t *testing.T) {
	stages := new(MockStageStore)
	leads := new(MockLeadStore)
	stats := new(MockStatsProvider)
	svc := NewService(stages, leads, stats, nil)

	stats.On("LeadCountsByStage", mock.Anything, testCompany, testPipeline).
		Return([]repository.StageLeadCount{{StageID: 100, Count: 3}}, nil)
	stats.On("PipelineTotals", mock.Anything, testCompany, testPipeline).
		Return(&repository.PipelineTotals{Leads: 3, TotalValue: 1500, Won: 1}, nil)

	out, err := svc.Stats(context.Background(), testCompany, testPipeline)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Totals.Leads)
	assert.Len(t, out.StageCounts, 1)
}
