package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masonfox/tome-sub001/internal/database/books"
	"github.com/masonfox/tome-sub001/internal/entities"
	"github.com/masonfox/tome-sub001/internal/metadata"
	"github.com/masonfox/tome-sub001/internal/statscache"
)

type BooksController struct {
	repo     *books.Repository
	enricher *metadata.Enricher
	stats    *statscache.Cache
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

// SetEnricher enables the metadata backfill endpoint (optional).
func (controller *BooksController) SetEnricher(enricher *metadata.Enricher) {
	controller.enricher = enricher
}

// SetStatsCache enables the cached stats endpoint (optional).
func (controller *BooksController) SetStatsCache(stats *statscache.Cache) {
	controller.stats = stats
}

type createBookRequest struct {
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	TotalPages  *int     `json:"total_pages"`
	HardcoverID string   `json:"hardcover_id"`
	Rating      *float64 `json:"rating"`
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.TotalPages != nil && *req.TotalPages <= 0 {
		respondBadRequest(c, "total_pages must be positive")
		return
	}

	book := &entities.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		TotalPages:  req.TotalPages,
		HardcoverID: req.HardcoverID,
		Rating:      req.Rating,
	}
	if err := controller.repo.Create(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		found, err := controller.repo.SearchBooks(query)
		if err != nil {
			respondInternalError(c, err, "search books")
			return
		}
		c.JSON(http.StatusOK, gin.H{"books": found, "count": len(found)})
		return
	}

	all, err := controller.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

func (controller *BooksController) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.FindByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book not found")
		return
	}
	c.JSON(http.StatusOK, book)
}

type updateBookRequest struct {
	TotalPages  *int    `json:"total_pages"`
	HardcoverID *string `json:"hardcover_id"`
	CoverURL    *string `json:"cover_url"`
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.FindByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book not found")
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	fields := map[string]any{}
	if req.TotalPages != nil {
		if *req.TotalPages <= 0 {
			respondBadRequest(c, "total_pages must be positive")
			return
		}
		fields["total_pages"] = *req.TotalPages
	}
	if req.HardcoverID != nil {
		fields["hardcover_id"] = *req.HardcoverID
	}
	if req.CoverURL != nil {
		fields["cover_url"] = *req.CoverURL
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no updatable fields provided")
		return
	}

	if err := controller.repo.UpdateMetadata(id, fields); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	book, err = controller.repo.FindByID(id)
	if err != nil {
		respondInternalError(c, err, "reload book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) EnrichBook(c *gin.Context) {
	if controller.enricher == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "metadata enrichment is not configured"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.FindByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book not found")
		return
	}

	result, err := controller.enricher.EnrichBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "enrich book")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (controller *BooksController) GetBookStats(c *gin.Context) {
	if controller.stats == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "stats cache is not configured"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.FindByID(id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book not found")
		return
	}

	stats, err := controller.stats.GetStats(id)
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
