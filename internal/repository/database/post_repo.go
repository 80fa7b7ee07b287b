package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lkzdsb-lab/postsvc/internal/model"
)

type PostRepository struct {
	gw *Gateway
}

func NewPostRepository(gw *Gateway) *PostRepository {
	return &PostRepository{gw: gw}
}

func postsTable(tx *gorm.DB) *gorm.DB {
	return tx.Model(&model.Post{})
}

func whereID(id int64) clause.Eq {
	return clause.Eq{Column: clause.Column{Table: model.TablePosts, Name: model.ColumnID}, Value: id}
}

// SelectByID scopes posts to the single row with the given id.
func SelectByID(id int64) Query {
	return func(tx *gorm.DB) *gorm.DB {
		return postsTable(tx).Where(whereID(id))
	}
}

// SelectPage scopes posts to one offset/limit window, ordered by id.
func SelectPage(skip, limit int) Query {
	return func(tx *gorm.DB) *gorm.DB {
		return postsTable(tx).
			Order(clause.OrderByColumn{Column: clause.Column{Name: model.ColumnID}}).
			Offset(skip).
			Limit(limit)
	}
}

// FindByID returns found=false with a nil error when no row has this id.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*model.Post, bool, error) {
	var post model.Post
	found, err := r.gw.FetchOne(ctx, SelectByID(id), &post)
	if err != nil || !found {
		return nil, found, err
	}
	return &post, true, nil
}

func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]model.Post, error) {
	list := make([]model.Post, 0, limit)
	if err := r.gw.FetchAll(ctx, SelectPage(skip, limit), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create inserts post and fills in its generated id.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	_, err := r.gw.Execute(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Create(post)
	})
	return err
}

// Update writes only the given columns of the row with this id.
func (r *PostRepository) Update(ctx context.Context, id int64, changes map[string]any) (int64, error) {
	return r.gw.Execute(ctx, func(tx *gorm.DB) *gorm.DB {
		return postsTable(tx).Where(whereID(id)).Updates(changes)
	})
}

func (r *PostRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.gw.Execute(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(whereID(id)).Delete(&model.Post{})
	})
}
