package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPatch_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		empty   bool
		changes map[string]any
		nulls   []string
	}{
		{name: "empty object", body: `{}`, empty: true, changes: map[string]any{}},
		{name: "title only", body: `{"title":"t"}`, changes: map[string]any{ColumnTitle: "t"}},
		{name: "empty string is a value", body: `{"content":""}`, changes: map[string]any{ColumnContent: ""}},
		{
			name:    "date",
			body:    `{"publication_date":"2022-06-01T10:00:00Z"}`,
			changes: map[string]any{ColumnPublicationDate: time.Date(2022, 6, 1, 10, 0, 0, 0, time.UTC)},
		},
		{name: "explicit null", body: `{"title":null}`, changes: map[string]any{ColumnTitle: ""}, nulls: []string{ColumnTitle}},
		{name: "unknown keys ignored", body: `{"id":9,"author":"x"}`, empty: true, changes: map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PostPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.empty, p.Empty())

			got := p.Changes()
			require.Len(t, got, len(tt.changes))
			for k, v := range tt.changes {
				if want, ok := v.(time.Time); ok {
					assert.True(t, want.Equal(got[k].(time.Time)))
					continue
				}
				assert.Equal(t, v, got[k], k)
			}

			var nulls []string
			if p.Title.Null {
				nulls = append(nulls, ColumnTitle)
			}
			if p.Content.Null {
				nulls = append(nulls, ColumnContent)
			}
			assert.Equal(t, tt.nulls, nulls)
		})
	}
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var p PostPatch
	assert.Error(t, json.Unmarshal([]byte(`{"title":false}`), &p))
}

func TestOptional_Marshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[int]    `json:"b"`
	}{A: Some("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(b))
}

func TestPostCreate_ToPost(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	title, content := "t", "c"

	p := PostCreate{Title: &title, Content: &content}.ToPost(now)
	assert.Equal(t, &Post{Title: "t", Content: "c", PublicationDate: now}, p)

	given := now.AddDate(-1, 0, 0)
	p = PostCreate{Title: &title, Content: &content, PublicationDate: &given}.ToPost(now)
	assert.Equal(t, given, p.PublicationDate)
	assert.Zero(t, p.ID)
}

func TestPost_JSONShape(t *testing.T) {
	b, err := json.Marshal(Post{ID: 1, Title: "A", Content: "B", PublicationDate: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"A","content":"B","publication_date":"2024-02-03T04:05:06Z"}`, string(b))
}
