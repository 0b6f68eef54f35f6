package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masonfox/tome-sub001/internal/streaks"
)

type StreakController struct {
	service *streaks.Service
}

func NewStreakController(service *streaks.Service) *StreakController {
	return &StreakController{service: service}
}

func (controller *StreakController) GetStreak(c *gin.Context) {
	c.JSON(http.StatusOK, controller.service.GetStreak())
}

func (controller *StreakController) RebuildStreak(c *gin.Context) {
	if err := controller.service.Recompute(); err != nil {
		respondInternalError(c, err, "rebuild streak")
		return
	}
	c.JSON(http.StatusOK, controller.service.GetStreak())
}
