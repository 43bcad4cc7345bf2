package dto

import (
	"time"

	"main/model"
)

type TagCreateRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor6"`
}

type TagUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor6"`
}

type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type TagListResponse struct {
	Tags  []TagResponse `json:"tags"`
	Count int           `json:"count"`
}

func ToTagResponse(tag *model.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedBy: tag.CreatedBy,
		CreatedAt: tag.CreatedAt,
	}
}

func ToTagResponses(tags []*model.Tag) []TagResponse {
	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = ToTagResponse(tag)
	}
	return responses
}
