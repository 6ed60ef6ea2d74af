package category

import (
	"strconv"
	"strings"
	"time"
)

type Category struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Position  int       `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Category) ItemKey() string {
	return strconv.FormatInt(c.ID, 10)
}

// Matches reports whether the title contains q, ignoring case.
func (c Category) Matches(q string) bool {
	return strings.Contains(strings.ToLower(c.Title), strings.ToLower(q))
}

type CreateCategoryInput struct {
	Title string `json:"title"`
}

type UpdateCategoryInput struct {
	Title string `json:"title"`
}

type ReorderInput struct {
	OrderedIDs []int64 `json:"orderedIds"`
}
