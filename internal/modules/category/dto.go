package category

import "qavat/internal/domain"

type CreateCategoryRequest struct {
	ParentID *int64            `json:"parent_id"`
	Names    map[string]string `json:"names" binding:"required"`
	IconURL  *string           `json:"icon_url"`
}

type UpdateCategoryRequest struct {
	ParentID *int64            `json:"parent_id"`
	Names    map[string]string `json:"names"`
	IconURL  *string           `json:"icon_url"`
}

type CategoryResponse struct {
	ID       int64              `json:"id"`
	ParentID *int64             `json:"parent_id,omitempty"`
	IconURL  *string            `json:"icon_url,omitempty"`
	Names    map[string]string  `json:"names"`
	Children []CategoryResponse `json:"children,omitempty"`
}

func toResponse(c *domain.Category) CategoryResponse {
	out := CategoryResponse{
		ID:       c.ID,
		ParentID: c.ParentID,
		IconURL:  c.IconURL,
		Names:    c.NamesByLang(),
	}
	for i := range c.Children {
		out.Children = append(out.Children, toResponse(&c.Children[i]))
	}
	return out
}

func toResponses(cs []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		out = append(out, toResponse(&cs[i]))
	}
	return out
}
