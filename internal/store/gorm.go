package store

import (
	"context"
	"errors"
	"fmt"

	"maqola/platform/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Gorm struct {
	db *gorm.DB
}

// NewGorm expects a connection opened with TranslateError enabled, otherwise
// unique violations can't be told apart from other failures.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) InsertUser(ctx context.Context, u *model.User) error {
	err := g.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}

		return fmt.Errorf("failed to insert user, %w", err)
	}

	return nil
}

func (g *Gorm) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User

	err := g.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).
		Error
	if err != nil {
		return nil, notFound(err, "failed to fetch user")
	}

	return &u, nil
}

func (g *Gorm) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := g.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).
		Error
	if err != nil {
		return nil, notFound(err, "failed to fetch user by email")
	}

	return &u, nil
}

func (g *Gorm) EmailExists(ctx context.Context, email string) (bool, error) {
	var found bool

	err := g.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check if email is registered, %w", err)
	}

	return found, nil
}

func (g *Gorm) DeleteUser(ctx context.Context, id uint) error {
	// SQLite only honours ON DELETE CASCADE with foreign keys switched on, so
	// the publications are removed explicitly in the same transaction
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&model.Publication{}).Error; err != nil {
			return fmt.Errorf("failed to delete publications, %w", err)
		}

		r := tx.Where("id = ?", id).Delete(&model.User{})
		if r.Error != nil {
			return fmt.Errorf("failed to delete user, %w", r.Error)
		}

		if r.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (g *Gorm) InsertPublication(ctx context.Context, p *model.Publication) error {
	err := g.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(p).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to insert publication, %w", err)
	}

	return nil
}

func (g *Gorm) GetPublication(ctx context.Context, id uint) (*model.Publication, error) {
	var p model.Publication

	err := g.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&p).
		Error
	if err != nil {
		return nil, notFound(err, "failed to fetch publication")
	}

	return &p, nil
}

func (g *Gorm) ListPublications(ctx context.Context, f PublicationFilter) ([]model.Publication, error) {
	q := g.db.WithContext(ctx).Preload("Author")

	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}

	publications := []model.Publication{}

	err := q.
		Order("created_at desc").
		Order("id desc").
		Find(&publications).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list publications, %w", err)
	}

	return publications, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return fmt.Errorf("%s, %w", msg, err)
}
