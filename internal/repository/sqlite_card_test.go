package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupModel(t *testing.T, db *sql.DB, model string) *domain.EntityType {
	t.Helper()
	et := testutil.NewTestEntityType(model)
	require.NoError(t, NewSQLiteEntityTypeRepo(db).Create(context.Background(), et))
	return et
}

func TestCardRepo_ListByModel_KanbanOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	et := setupModel(t, db, "project.task")
	repo := NewSQLiteCardRepo(db)

	normal5 := testutil.NewTestCard(et.Model, "normal-5", testutil.WithSequence(5))
	high100 := testutil.NewTestCard(et.Model, "high-100", testutil.WithPriority(domain.PriorityHigh), testutil.WithSequence(100))
	high1 := testutil.NewTestCard(et.Model, "high-1", testutil.WithPriority(domain.PriorityHigh), testutil.WithSequence(1))
	medium := testutil.NewTestCard(et.Model, "medium-50", testutil.WithPriority(domain.PriorityMedium), testutil.WithSequence(50))
	for _, c := range []*domain.Card{normal5, high100, high1, medium} {
		require.NoError(t, repo.Create(ctx, c))
	}

	cards, err := repo.ListByModel(ctx, et.Model)
	require.NoError(t, err)
	require.Len(t, cards, 4)
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"high-1", "high-100", "medium-50", "normal-5"}, names)
}

func TestCardRepo_GetByID_ResolvesStageLegends(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	et := setupModel(t, db, "project.task")
	stage := testutil.NewTestStage(et.Model, "In Progress",
		testutil.WithLegends("Urgent", "Blocked by QA", "Ready for next stage", "In progress"))
	require.NoError(t, NewSQLiteStageRepo(db).Create(ctx, stage))

	repo := NewSQLiteCardRepo(db)
	card := testutil.NewTestCard(et.Model, "Fix login", testutil.WithStage(stage), testutil.WithStatus(domain.StatusBlocked))
	require.NoError(t, repo.Create(ctx, card))

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StageID)
	assert.Equal(t, stage.ID, *got.StageID)
	assert.Equal(t, "Blocked by QA", got.StatusLegend())
	assert.Equal(t, "Urgent", got.LegendPriority)
	assert.Equal(t, domain.StatusBlocked, got.Status)
}

func TestCardRepo_UnstagedCardHasNoLegends(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	et := setupModel(t, db, "")
	repo := NewSQLiteCardRepo(db)

	card := testutil.NewTestCard(et.Model, "Loose")
	require.NoError(t, repo.Create(ctx, card))

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StageID)
	assert.Empty(t, got.LegendNormal)
	assert.Equal(t, domain.DefaultKanbanSequence, got.Sequence)
	assert.Equal(t, domain.PriorityNormal, got.Priority)
}

func TestCardRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	et := setupModel(t, db, "")
	repo := NewSQLiteCardRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestCard(et.Model, "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCardRepo_ListByStage(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	et := setupModel(t, db, "")
	stages := NewSQLiteStageRepo(db)
	a := testutil.NewTestStage(et.Model, "A")
	b := testutil.NewTestStage(et.Model, "B")
	require.NoError(t, stages.Create(ctx, a))
	require.NoError(t, stages.Create(ctx, b))

	repo := NewSQLiteCardRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(et.Model, "in a", testutil.WithStage(a))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(et.Model, "in b", testutil.WithStage(b))))

	cards, err := repo.ListByStage(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "in a", cards[0].Name)
}
