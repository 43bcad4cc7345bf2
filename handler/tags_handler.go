package handler

import (
	"errors"
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateTagHandler(c *gin.Context, tags *usecase.TagService) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := tags.CreateTag(c, c.GetString("user_id"), req.Name, req.Color)
	if err != nil {
		respondTagError(c, err)
		return
	}
	utils.Created(c, dto.ToTagResponse(tag))
}

func GetTagHandler(c *gin.Context, tags *usecase.TagService) {
	tagID, ok := tagIDParam(c)
	if !ok {
		return
	}

	tag, err := tags.GetTag(c, c.GetString("user_id"), tagID)
	if err != nil {
		respondTagError(c, err)
		return
	}
	utils.Success(c, dto.ToTagResponse(tag))
}

func ListTagsHandler(c *gin.Context, tags *usecase.TagService) {
	results, err := tags.ListTags(c, c.GetString("user_id"))
	if err != nil {
		respondTagError(c, err)
		return
	}
	utils.Success(c, dto.TagListResponse{
		Tags:  dto.ToTagResponses(results),
		Count: len(results),
	})
}

func UpdateTagHandler(c *gin.Context, tags *usecase.TagService) {
	tagID, ok := tagIDParam(c)
	if !ok {
		return
	}

	var req dto.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	tag, err := tags.UpdateTag(c, c.GetString("user_id"), tagID, req.Name, req.Color)
	if err != nil {
		respondTagError(c, err)
		return
	}
	utils.Success(c, dto.ToTagResponse(tag))
}

func DeleteTagHandler(c *gin.Context, tags *usecase.TagService) {
	tagID, ok := tagIDParam(c)
	if !ok {
		return
	}

	if err := tags.DeleteTag(c, c.GetString("user_id"), tagID); err != nil {
		respondTagError(c, err)
		return
	}
	utils.NoContent(c)
}

func tagIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid tag id")
		return 0, false
	}
	return uint(id), true
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case usecase.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Tag not found")
	case errors.Is(err, usecase.ErrConflict):
		utils.Conflict(c, "Tag name already exists")
	default:
		utils.TrackError("handler", "tag")
		utils.InternalError(c, "Internal server error")
	}
}
