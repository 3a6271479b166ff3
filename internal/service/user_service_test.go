package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_DateFormatFollowsActor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	format, err := env.userSvc.DateFormat(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%m/%d/%Y", format)

	require.NoError(t, env.userSvc.Create(ctx, &domain.User{Login: "hans", Lang: "de_DE"}))
	format, err = env.userSvc.DateFormat(WithActor(ctx, "hans"))
	require.NoError(t, err)
	assert.Equal(t, "%d.%m.%Y", format)
}

func TestUserService_CreateDefaultsLanguage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := &domain.User{Login: "sam"}
	require.NoError(t, env.userSvc.Create(ctx, u))
	assert.Equal(t, "en_US", u.Lang)

	err := env.userSvc.Create(ctx, &domain.User{Login: "sam"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserService_SetLanguage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.userSvc.SetLanguage(ctx, domain.DefaultUserLogin, "en_GB"))
	u, err := env.userSvc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en_GB", u.Lang)

	err = env.userSvc.SetLanguage(ctx, domain.DefaultUserLogin, "xx_XX")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompanyService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c := &domain.Company{Name: "Acme", Country: domain.NilIfBlank("de")}
	require.NoError(t, env.companySvc.Create(ctx, c))
	require.NotNil(t, c.Country)
	assert.Equal(t, "DE", *c.Country)

	byID, err := env.companySvc.Resolve(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", byID.Name)

	byName, err := env.companySvc.Resolve(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)

	_, err = env.companySvc.Resolve(ctx, "Globex")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = env.companySvc.Create(ctx, &domain.Company{Name: "Bad", Country: domain.NilIfBlank("ZZZ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompanyService_DeleteCascadesToParameters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := &domain.Company{Name: "Acme"}
	require.NoError(t, env.companySvc.Create(ctx, c))
	p := env.newParameter(t, "payroll.bonus", domain.TypeInteger, func(p *domain.TimeParameter) { p.CompanyID = &c.ID })

	require.NoError(t, env.companySvc.Delete(ctx, c.ID))
	_, err := env.paramSvc.GetParameter(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntityTypeService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e := &domain.EntityType{Model: " project.task "}
	require.NoError(t, env.typeSvc.Create(ctx, e))
	assert.Equal(t, "project.task", e.Model)
	assert.Equal(t, "project.task", e.Name)

	err := env.typeSvc.Create(ctx, &domain.EntityType{Model: "Project Task"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStageService_ExpandGroupsOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	model := env.newModel(t)
	env.newStage(t, model, "B")
	env.newStage(t, model, "A")
	env.newStage(t, model, "C")

	stages, err := env.stageSvc.ExpandGroups(ctx, model, repository.StageOrderNameDesc)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{stages[0].Name, stages[1].Name, stages[2].Name})

	assert.True(t, env.stageSvc.Domain(model).Contains(stages[0]))
	assert.False(t, env.stageSvc.Domain("other.model").Contains(stages[0]))

	err = env.stageSvc.Create(ctx, &domain.Stage{Name: "Orphan", Model: "no.such_model"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
