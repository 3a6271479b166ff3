package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/basekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageRepo_ListByModel_NaturalOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	types := NewSQLiteEntityTypeRepo(db)
	repo := NewSQLiteStageRepo(db)

	task := testutil.NewTestEntityType("project.task")
	other := testutil.NewTestEntityType("crm.lead")
	require.NoError(t, types.Create(ctx, task))
	require.NoError(t, types.Create(ctx, other))

	done := testutil.NewTestStage(task.Model, "Done", testutil.WithStageSequence(30))
	review := testutil.NewTestStage(task.Model, "Review", testutil.WithStageSequence(20))
	backlog := testutil.NewTestStage(task.Model, "Backlog", testutil.WithStageSequence(20))
	lead := testutil.NewTestStage(other.Model, "Qualified", testutil.WithStageSequence(1))
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, review))
	require.NoError(t, repo.Create(ctx, backlog))
	require.NoError(t, repo.Create(ctx, lead))

	stages, err := repo.ListByModel(ctx, task.Model, StageOrderNatural)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, "Backlog", stages[0].Name, "sequence ties break on name")
	assert.Equal(t, "Review", stages[1].Name)
	assert.Equal(t, "Done", stages[2].Name)

	stages, err = repo.ListByModel(ctx, task.Model, StageOrderNameDesc)
	require.NoError(t, err)
	assert.Equal(t, "Review", stages[0].Name)
	assert.Equal(t, "Backlog", stages[2].Name)
}

func TestStageRepo_ListByModel_RejectsUnknownOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStageRepo(db)

	_, err := repo.ListByModel(context.Background(), "project.task", StageOrder("id; DROP TABLE stages"))
	assert.Error(t, err)
}

func TestStageRepo_CreateRequiresKnownModel(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStageRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestStage("nope.model", "New"))
	assert.Error(t, err)
}

func TestStageRepo_UpdateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	types := NewSQLiteEntityTypeRepo(db)
	repo := NewSQLiteStageRepo(db)

	et := testutil.NewTestEntityType("")
	require.NoError(t, types.Create(ctx, et))
	s := testutil.NewTestStage(et.Model, "New")
	require.NoError(t, repo.Create(ctx, s))

	s.Name = "Todo"
	s.Fold = true
	s.LegendBlocked = "Waiting on customer"
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Todo", got.Name)
	assert.True(t, got.Fold)
	assert.Equal(t, "Waiting on customer", got.LegendBlocked)
	assert.Equal(t, et.Model, got.Model)
}

func TestStageRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStageRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseStageOrder(t *testing.T) {
	cases := map[string]StageOrder{
		"":               StageOrderNatural,
		"sequence":       StageOrderNatural,
		"Sequence  DESC": StageOrderSequenceDesc,
		"name":           StageOrderName,
		"name desc":      StageOrderNameDesc,
	}
	for in, want := range cases {
		got, err := ParseStageOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStageOrder("created_at")
	assert.Error(t, err)
}
