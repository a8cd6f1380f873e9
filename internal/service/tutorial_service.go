package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/swim_bot/internal/model"
	"go.uber.org/zap"
)

type TutorialService struct {
	tutorials TutorialStore
	logger    *zap.Logger
}

func NewTutorialService(tutorials TutorialStore, logger *zap.Logger) *TutorialService {
	return &TutorialService{
		tutorials: tutorials,
		logger:    logger,
	}
}

// ByStyle материалы по стилю плавания
func (s *TutorialService) ByStyle(ctx context.Context, style model.SwimStyle) ([]*model.Tutorial, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("unknown swim style %q", style)
	}

	tutorials, err := s.tutorials.ListByStyle(ctx, style)
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	return tutorials, nil
}
