package category

import (
	"context"

	"go.uber.org/zap"

	"marketbridge/internal/logger"
)

// Service assembles the category tree for clients.
type Service interface {
	// GetTotalCategories returns every root category with its medium and
	// small descendants nested inside.
	GetTotalCategories(ctx context.Context) ([]*CategoryDto, error)

	// GetChildCategories returns the subtree below the given category. A
	// leaf (level 3) category is returned as-is.
	GetChildCategories(ctx context.Context, categoryID int64) ([]*CategoryDto, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTotalCategories(ctx context.Context) ([]*CategoryDto, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Category"),
		zap.String("method", "GetTotalCategories"),
	)
	log.Info("assembling category tree")

	roots, err := s.repo.FindRoots(ctx)
	if err != nil {
		log.Error("failed to load root categories", zap.Error(err))
		return nil, err
	}

	return s.toDtoList(ctx, roots)
}

func (s *service) GetChildCategories(ctx context.Context, categoryID int64) ([]*CategoryDto, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Category"),
		zap.String("method", "GetChildCategories"),
		zap.Int64("category_id", categoryID),
	)

	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		log.Error("category lookup failed", zap.Error(err))
		return nil, err
	}

	// Leaf categories have nothing below them.
	if c.Level == 3 {
		return []*CategoryDto{toDto(c)}, nil
	}

	children, err := s.repo.FindByParentID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return s.toDtoList(ctx, children)
}

func (s *service) toDtoList(ctx context.Context, categories []*Category) ([]*CategoryDto, error) {
	dtos := make([]*CategoryDto, 0, len(categories))

	for _, c := range categories {
		dto := toDto(c)

		if c.Level != 3 {
			children, err := s.repo.FindByParentID(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			dto.ChildCategories, err = s.toDtoList(ctx, children)
			if err != nil {
				return nil, err
			}
		}

		dtos = append(dtos, dto)
	}

	return dtos, nil
}

func toDto(c *Category) *CategoryDto {
	var parentID int64
	if c.ParentID != nil {
		parentID = *c.ParentID
	}

	return &CategoryDto{
		CategoryID: c.ID,
		ParentID:   parentID,
		Level:      c.Level,
		Name:       c.Name,
	}
}
