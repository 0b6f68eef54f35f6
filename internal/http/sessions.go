package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masonfox/tome-sub001/internal/entities"
	"github.com/masonfox/tome-sub001/internal/reading"
)

// SessionsController exposes the reading-session lifecycle over HTTP. All
// state transitions are delegated to the reading service; the controller only
// translates JSON and maps domain errors to status codes.
type SessionsController struct {
	service *reading.Service
}

func NewSessionsController(service *reading.Service) *SessionsController {
	return &SessionsController{service: service}
}

func (controller *SessionsController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in reading.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := controller.service.UpdateStatus(id, in)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type markDNFRequest struct {
	CompletedDate *entities.Date `json:"completed_date"`
	Rating        *float64       `json:"rating"`
	Review        *string        `json:"review"`
}

func (controller *SessionsController) MarkAsDNF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req markDNFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := controller.service.MarkAsDNF(reading.DNFInput{
		BookID:        id,
		CompletedDate: req.CompletedDate,
		Rating:        req.Rating,
		Review:        req.Review,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (controller *SessionsController) StartReread(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := controller.service.StartReread(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondCreated(c, session)
}

func (controller *SessionsController) GetSessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sessions, err := controller.service.SessionsForBook(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

func (controller *SessionsController) GetActiveSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := controller.service.ActiveSession(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if session == nil {
		respondNotFound(c, "No active reading session found for this book")
		return
	}
	c.JSON(http.StatusOK, session)
}

type updateSessionDateRequest struct {
	Field string         `json:"field" binding:"required"`
	Value *entities.Date `json:"value" binding:"required"`
}

func (controller *SessionsController) UpdateSessionDate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateSessionDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	session, err := controller.service.UpdateSessionDate(id, reading.DateField(req.Field), *req.Value)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
