package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
)

// matchID resolves input against ids: an exact match wins, then a unique
// prefix.
func matchID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveStage finds a stage of model by exact name (case-insensitive), id
// or id prefix.
func resolveStage(ctx context.Context, app *App, model, input string) (*domain.Stage, error) {
	stages, err := app.Stages.ExpandGroups(ctx, model, repository.StageOrderNatural)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if strings.EqualFold(s.Name, input) {
			return s, nil
		}
	}
	ids := make([]string, 0, len(stages))
	for _, s := range stages {
		ids = append(ids, s.ID)
	}
	id, err := matchID("stage", input, ids)
	if err != nil {
		return nil, err
	}
	return app.Stages.GetByID(ctx, id)
}

// resolveStageByID looks a stage up without knowing its model.
func resolveStageByID(ctx context.Context, app *App, input string) (*domain.Stage, error) {
	if s, err := app.Stages.GetByID(ctx, input); err == nil {
		return s, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	types, err := app.Types.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range types {
		stages, err := app.Stages.ExpandGroups(ctx, t.Model, repository.StageOrderNatural)
		if err != nil {
			return nil, err
		}
		for _, s := range stages {
			ids = append(ids, s.ID)
		}
	}
	id, err := matchID("stage", input, ids)
	if err != nil {
		return nil, err
	}
	return app.Stages.GetByID(ctx, id)
}

func resolveCardID(ctx context.Context, app *App, input string) (string, error) {
	types, err := app.Types.List(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, t := range types {
		cards, err := app.Cards.ListByModel(ctx, t.Model)
		if err != nil {
			return "", err
		}
		for _, c := range cards {
			ids = append(ids, c.ID)
		}
	}
	return matchID("card", input, ids)
}

// resolveParameter finds a parameter by code within scope, then by id or
// id prefix.
func resolveParameter(ctx context.Context, app *App, input string, scope domain.Scope) (*domain.TimeParameter, error) {
	p, err := app.Params.FindParameter(ctx, input, scope)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	params, err := app.Params.ListParameters(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(params))
	for _, p := range params {
		ids = append(ids, p.ID)
	}
	id, err := matchID("parameter", input, ids)
	if err != nil {
		return nil, err
	}
	return app.Params.GetParameter(ctx, id)
}

func resolveVersionID(ctx context.Context, app *App, input string) (string, error) {
	params, err := app.Params.ListParameters(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, p := range params {
		versions, err := app.Params.ListVersions(ctx, p.ID)
		if err != nil {
			return "", err
		}
		for _, v := range versions {
			ids = append(ids, v.ID)
		}
	}
	return matchID("version", input, ids)
}

// scopeFlags builds a parameter scope from --country and --company values.
// The company may be given by id or name.
func scopeFlags(ctx context.Context, app *App, country, company string) (domain.Scope, error) {
	var scope domain.Scope
	scope.Country = domain.NilIfBlank(strings.ToUpper(strings.TrimSpace(country)))
	if strings.TrimSpace(company) != "" {
		c, err := app.Companies.Resolve(ctx, strings.TrimSpace(company))
		if err != nil {
			return scope, err
		}
		scope.CompanyID = &c.ID
	}
	return scope, nil
}

// companyNames maps company ids to names for display.
func companyNames(ctx context.Context, app *App) (map[string]string, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names, nil
}
