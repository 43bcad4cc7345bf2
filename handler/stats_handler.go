package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func TaskStatsHandler(c *gin.Context, tasks *usecase.TaskService) {
	stats, err := tasks.Stats(c, c.GetString("user_id"))
	if err != nil {
		utils.TrackError("handler", "stats")
		utils.InternalError(c, "Internal server error")
		return
	}
	utils.Success(c, stats)
}
