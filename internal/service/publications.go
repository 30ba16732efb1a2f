package service

import (
	"context"
	"errors"
	"strings"

	"maqola/platform/internal/model"
	"maqola/platform/internal/policy"
	"maqola/platform/internal/store"
	"maqola/platform/validators"
)

type PublicationInput struct {
	Title      string
	Category   string
	Annotation string
	Content    string
}

type Publications struct {
	store           store.Store
	defaultCategory string
}

// NewPublications uses defaultCategory for publications submitted with a
// blank category
func NewPublications(s store.Store, defaultCategory string) *Publications {
	return &Publications{store: s, defaultCategory: defaultCategory}
}

// Create stores a new publication written by author. The author always comes
// from the resolved session, never from the submitted form.
func (p *Publications) Create(ctx context.Context, author *model.User, in PublicationInput) (*model.Publication, error) {
	if author == nil {
		return nil, ErrUnauthorized
	}

	pub := &model.Publication{
		Title:      strings.TrimSpace(in.Title),
		Category:   strings.TrimSpace(in.Category),
		Annotation: strings.TrimSpace(in.Annotation),
		Content:    strings.TrimSpace(in.Content),
		AuthorID:   author.ID,
	}

	if pub.Category == "" {
		pub.Category = p.defaultCategory
	}

	if err := validators.TextValidator(pub.Title, validators.MaxTitleLength); err != nil {
		return nil, invalid("title", err)
	}

	if err := validators.TextValidator(pub.Category, validators.MaxCategoryLength); err != nil {
		return nil, invalid("category", err)
	}

	if err := validators.TextValidator(pub.Annotation, 0); err != nil {
		return nil, invalid("annotation", err)
	}

	if err := validators.TextValidator(pub.Content, 0); err != nil {
		return nil, invalid("content", err)
	}

	if err := p.store.InsertPublication(ctx, pub); err != nil {
		// The author was deleted after the session was issued
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	pub.Author = author
	return pub, nil
}

// Get is open to everyone, no identity needed
func (p *Publications) Get(ctx context.Context, id uint) (*model.Publication, error) {
	pub, err := p.store.GetPublication(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPublicationNotFound
		}

		return nil, err
	}

	return pub, nil
}

// ListHome returns every publication, newest first, no matter who asks
func (p *Publications) ListHome(ctx context.Context) ([]model.Publication, error) {
	return p.store.ListPublications(ctx, policy.HomeScope())
}

// ListDashboard returns only what user wrote, newest first
func (p *Publications) ListDashboard(ctx context.Context, user *model.User) ([]model.Publication, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	return p.store.ListPublications(ctx, policy.DashboardScope(user))
}
