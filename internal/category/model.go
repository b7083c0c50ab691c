package category

import "marketbridge/internal/audit"

// Category is one node of the three-level catalog tree
// (1 = large, 2 = medium, 3 = small).
type Category struct {
	ID       int64
	ParentID *int64
	Level    int64
	Name     string
	audit.Fields
}

// CategoryDto is the nested projection returned to clients. A root node's
// missing parent is rendered as 0.
type CategoryDto struct {
	CategoryID      int64          `json:"categoryId"`
	ParentID        int64          `json:"parentId"`
	Level           int64          `json:"level"`
	Name            string         `json:"name"`
	ChildCategories []*CategoryDto `json:"childCategories,omitempty"`
}
