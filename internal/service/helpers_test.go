package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/basekit/internal/db"
	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/alexanderramin/basekit/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db  *sql.DB
	uow db.UnitOfWork

	types     *repository.SQLiteEntityTypeRepo
	stages    *repository.SQLiteStageRepo
	cards     *repository.SQLiteCardRepo
	users     *repository.SQLiteUserRepo
	languages *repository.SQLiteLanguageRepo
	companies *repository.SQLiteCompanyRepo
	params    *repository.SQLiteParameterRepo
	versions  *repository.SQLiteVersionRepo

	typeSvc    EntityTypeService
	stageSvc   StageService
	cardSvc    CardService
	userSvc    UserService
	companySvc CompanyService
	paramSvc   ParamService
	importSvc  ImportService

	events *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		types:     repository.NewSQLiteEntityTypeRepo(database),
		stages:    repository.NewSQLiteStageRepo(database),
		cards:     repository.NewSQLiteCardRepo(database),
		users:     repository.NewSQLiteUserRepo(database),
		languages: repository.NewSQLiteLanguageRepo(database),
		companies: repository.NewSQLiteCompanyRepo(database),
		params:    repository.NewSQLiteParameterRepo(database),
		versions:  repository.NewSQLiteVersionRepo(database),
		events:    &recordingObserver{},
	}
	env.typeSvc = NewEntityTypeService(env.types)
	env.stageSvc = NewStageService(env.stages, env.types)
	env.cardSvc = NewCardService(env.cards, env.stages, env.types, env.users, env.events)
	env.userSvc = NewUserService(env.users, env.languages)
	env.companySvc = NewCompanyService(env.companies)
	env.paramSvc = NewParamService(env.params, env.versions, env.companies, env.userSvc, env.uow, nil, env.events)
	env.importSvc = NewImportService(env.uow, env.events)
	return env
}

// newModel registers a fresh entity type and returns its model name.
func (e *testEnv) newModel(t *testing.T) string {
	t.Helper()
	et := testutil.NewTestEntityType("")
	require.NoError(t, e.typeSvc.Create(context.Background(), et))
	return et.Model
}

func (e *testEnv) newStage(t *testing.T, model, name string, opts ...testutil.StageOption) *domain.Stage {
	t.Helper()
	st := testutil.NewTestStage(model, name, opts...)
	require.NoError(t, e.stageSvc.Create(context.Background(), st))
	return st
}

func (e *testEnv) newParameter(t *testing.T, code string, vt domain.ValueType, opts ...testutil.ParameterOption) *domain.TimeParameter {
	t.Helper()
	p := testutil.NewTestParameter(code, vt, opts...)
	require.NoError(t, e.paramSvc.CreateParameter(context.Background(), p))
	return p
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, ev := range o.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}
