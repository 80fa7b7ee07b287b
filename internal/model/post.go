package model

import (
	"time"
)

// Column names of the posts table. Queries are built from these, never from user input.
const (
	TablePosts            = "posts"
	ColumnID              = "id"
	ColumnTitle           = "title"
	ColumnContent         = "content"
	ColumnPublicationDate = "publication_date"
)

// TitleMaxLength is the column size of posts.title, in characters.
const TitleMaxLength = 255

type Post struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PublicationDate time.Time `gorm:"column:publication_date;not null" json:"publication_date"`
	Title           string    `gorm:"column:title;size:255;not null" json:"title"`
	Content         string    `gorm:"column:content;type:text;not null" json:"content"`
}

func (Post) TableName() string {
	return TablePosts
}

// PostCreate is the body of POST /posts. Title and Content are pointers so that a
// missing key fails "required" while an empty string is still accepted.
type PostCreate struct {
	Title           *string    `json:"title" binding:"required,max=255"`
	Content         *string    `json:"content" binding:"required"`
	PublicationDate *time.Time `json:"publication_date"`
}

// ToPost builds the row to insert. now is used when no publication date was sent.
func (in PostCreate) ToPost(now time.Time) *Post {
	p := &Post{PublicationDate: now}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.PublicationDate != nil {
		p.PublicationDate = *in.PublicationDate
	}
	return p
}

// PostPatch is the body of PATCH /posts/:id. Only keys present in the request are applied.
type PostPatch struct {
	Title           Optional[string]    `json:"title"`
	Content         Optional[string]    `json:"content"`
	PublicationDate Optional[time.Time] `json:"publication_date"`
}

// Empty reports whether the request carried no field at all.
func (in PostPatch) Empty() bool {
	return !in.Title.Set && !in.Content.Set && !in.PublicationDate.Set
}

// Changes returns column -> value for the present fields only.
func (in PostPatch) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if in.Title.Set {
		changes[ColumnTitle] = in.Title.Value
	}
	if in.Content.Set {
		changes[ColumnContent] = in.Content.Value
	}
	if in.PublicationDate.Set {
		changes[ColumnPublicationDate] = in.PublicationDate.Value
	}
	return changes
}
