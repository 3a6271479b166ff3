package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/google/uuid"
)

type cardService struct {
	cards    repository.CardRepo
	stages   repository.StageRepo
	types    repository.EntityTypeRepo
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewCardService(
	cards repository.CardRepo,
	stages repository.StageRepo,
	types repository.EntityTypeRepo,
	users repository.UserRepo,
	observers ...UseCaseObserver,
) CardService {
	return &cardService{
		cards:    cards,
		stages:   stages,
		types:    types,
		users:    users,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *cardService) Create(ctx context.Context, c *domain.Card) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"model": c.Model}
	defer func() { observe(ctx, s.observer, "create-card", startedAt, fields, err) }()

	c.ApplyCreateDefaults()
	if err = domain.Validate(c); err != nil {
		return err
	}
	if _, err = s.types.Get(ctx, c.Model); err != nil {
		return err
	}

	var stage *domain.Stage
	if c.StageID != nil {
		stage, err = s.stageFor(ctx, c, *c.StageID)
	} else {
		stage, err = DefaultStageFunc(s.stages, c.Model)(ctx)
	}
	if err != nil {
		return err
	}
	c.SetStage(stage)
	if stage != nil {
		fields["stage"] = stage.Name
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err = s.cards.Create(ctx, c); err != nil {
		return fmt.Errorf("creating card: %w", err)
	}
	return nil
}

// stageFor loads stageID and checks it is in the card's stage domain.
func (s *cardService) stageFor(ctx context.Context, c *domain.Card, stageID string) (*domain.Stage, error) {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if !(StageDomain{Model: c.Model}).Contains(stage) {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"stage": fmt.Sprintf("stage %q belongs to %s, not %s", stage.Name, stage.Model, c.Model),
		}}
	}
	return stage, nil
}

func (s *cardService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.cards.GetByID(ctx, id)
}

func (s *cardService) ListByModel(ctx context.Context, model string) ([]*domain.Card, error) {
	return s.cards.ListByModel(ctx, model)
}

func (s *cardService) Update(ctx context.Context, c *domain.Card) error {
	c.ApplyDefaults()
	if err := domain.Validate(c); err != nil {
		return err
	}
	var stage *domain.Stage
	if c.StageID != nil {
		var err error
		if stage, err = s.stageFor(ctx, c, *c.StageID); err != nil {
			return err
		}
	}
	c.SetStage(stage)
	c.UpdatedAt = time.Now().UTC()
	return s.cards.Update(ctx, c)
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	return s.cards.Delete(ctx, id)
}

func (s *cardService) MoveToStage(ctx context.Context, id, stageID string) (card *domain.Card, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"card_id": id, "stage_id": stageID}
	defer func() { observe(ctx, s.observer, "move-card", startedAt, fields, err) }()

	card, err = s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var stage *domain.Stage
	if stageID != "" {
		if stage, err = s.stages.GetByID(ctx, stageID); err != nil {
			return nil, err
		}
	}
	if err = card.MoveTo(stage, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Card, error) {
	return s.mutate(ctx, id, func(c *domain.Card) error {
		c.Status = status
		return nil
	})
}

func (s *cardService) SetPriority(ctx context.Context, id string, priority domain.Priority) (*domain.Card, error) {
	return s.mutate(ctx, id, func(c *domain.Card) error {
		c.Priority = priority
		return nil
	})
}

func (s *cardService) Assign(ctx context.Context, id, login string) (*domain.Card, error) {
	var userID *string
	if login != "" {
		u, err := s.users.GetByLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		userID = &u.ID
	}
	return s.mutate(ctx, id, func(c *domain.Card) error {
		c.UserID = userID
		return nil
	})
}

func (s *cardService) mutate(ctx context.Context, id string, fn func(c *domain.Card) error) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(card); err != nil {
		return nil, err
	}
	if err := domain.Validate(card); err != nil {
		return nil, err
	}
	card.UpdatedAt = time.Now().UTC()
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Duplicate copies the card. Stage and status are not carried over: the
// copy lands in the default stage with normal status.
func (s *cardService) Duplicate(ctx context.Context, id string) (*domain.Card, error) {
	src, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := src.Duplicate(time.Now().UTC())
	if err := s.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("duplicating card: %w", err)
	}
	return dup, nil
}

func (s *cardService) Board(ctx context.Context, model string, order repository.StageOrder) (*Board, error) {
	stages, err := s.stages.ListByModel(ctx, model, order)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByModel(ctx, model)
	if err != nil {
		return nil, err
	}

	byStage := make(map[string][]*domain.Card, len(stages))
	var unstaged []*domain.Card
	for _, c := range cards {
		if c.StageID == nil {
			unstaged = append(unstaged, c)
			continue
		}
		byStage[*c.StageID] = append(byStage[*c.StageID], c)
	}

	board := &Board{Model: model, Groups: make([]StageGroup, 0, len(stages)+1)}
	for _, st := range stages {
		board.Groups = append(board.Groups, StageGroup{Stage: st, Cards: byStage[st.ID]})
	}
	if len(unstaged) > 0 {
		board.Groups = append(board.Groups, StageGroup{Cards: unstaged})
	}
	return board, nil
}
