package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masonfox/tome-sub001/internal/database/progress"
	"github.com/masonfox/tome-sub001/internal/reading"
)

type ProgressController struct {
	logger *reading.ProgressLogger
	repo   *progress.Repository
}

func NewProgressController(logger *reading.ProgressLogger, repo *progress.Repository) *ProgressController {
	return &ProgressController{logger: logger, repo: repo}
}

func (controller *ProgressController) LogProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in reading.LogProgressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := controller.logger.LogProgress(id, in)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondCreated(c, result)
}

func (controller *ProgressController) GetSessionProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := controller.repo.FindAllForSession(id)
	if err != nil {
		respondInternalError(c, err, "list progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": entries, "count": len(entries)})
}
