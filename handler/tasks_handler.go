package handler

import (
	"errors"
	"strconv"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateTaskHandler(c *gin.Context, tasks *usecase.TaskService) {
	var req dto.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	task, err := tasks.CreateTask(c, c.GetString("user_id"), req)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	utils.Created(c, dto.ToTaskResponse(task))
}

func GetTaskHandler(c *gin.Context, tasks *usecase.TaskService) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := tasks.GetTask(c, c.GetString("user_id"), taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	utils.Success(c, dto.ToTaskResponse(task))
}

func ListTasksHandler(c *gin.Context, tasks *usecase.TaskService) {
	opts, err := parseSearchOptions(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	results, total, err := tasks.ListTasks(c, opts)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	utils.Success(c, dto.TaskListResponse{
		Tasks:    dto.ToTaskResponses(results),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func UpdateTaskHandler(c *gin.Context, tasks *usecase.TaskService) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	task, err := tasks.UpdateTask(c, c.GetString("user_id"), taskID, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	utils.Success(c, dto.ToTaskResponse(task))
}

// PatchTaskHandler flips the completion flag only. Repeating the same
// value is a no-op that still answers 200.
func PatchTaskHandler(c *gin.Context, tasks *usecase.TaskService) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.TaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	task, err := tasks.SetCompletion(c, c.GetString("user_id"), taskID, *req.Completed)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	utils.Success(c, dto.ToTaskResponse(task))
}

func DeleteTaskHandler(c *gin.Context, tasks *usecase.TaskService) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := tasks.DeleteTask(c, c.GetString("user_id"), taskID); err != nil {
		respondTaskError(c, err)
		return
	}
	utils.NoContent(c)
}

func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid task id")
		return 0, false
	}
	return uint(id), true
}

func parseSearchOptions(c *gin.Context) (repository.SearchOptions, error) {
	opts := repository.SearchOptions{
		UserID:    c.GetString("user_id"),
		Status:    c.DefaultQuery("status", "all"),
		Search:    c.Query("search"),
		Tags:      c.QueryArray("tags"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	// "completed" is the boolean twin of "status"; it wins when both are
	// present.
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New("completed must be true or false")
		}
		if completed {
			opts.Status = "completed"
		} else {
			opts.Status = "pending"
		}
	}

	for _, raw := range c.QueryArray("priority") {
		p := model.Priority(raw)
		if !p.Valid() {
			return opts, errors.New("priority must be low, medium, high or urgent")
		}
		opts.Priorities = append(opts.Priorities, p)
	}

	if raw := c.Query("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("due_before must be an RFC 3339 timestamp")
		}
		opts.DueBefore = &t
	}
	if raw := c.Query("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("due_after must be an RFC 3339 timestamp")
		}
		opts.DueAfter = &t
	}

	if raw := c.Query("is_recurring"); raw != "" {
		recurring, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New("is_recurring must be true or false")
		}
		opts.IsRecurring = &recurring
	}

	opts.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	opts.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(repository.DefaultPageSize)))
	return opts, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case usecase.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, "Task not found")
	case errors.Is(err, usecase.ErrConflict):
		utils.Conflict(c, err.Error())
	default:
		utils.TrackError("handler", "task")
		utils.InternalError(c, "Internal server error")
	}
}
