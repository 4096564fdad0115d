package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pevans/newscards/newsfeed"
	"github.com/pevans/newscards/scraper"
)

// APIServer exposes a Session over HTTP.
type APIServer struct {
	session *Session
}

// NewAPIServer creates a new API server for session.
func NewAPIServer(session *Session) *APIServer {
	return &APIServer{
		session: session,
	}
}

// SetupRouter configures the Gin router with all API routes.
func (s *APIServer) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	api.GET("/items", s.HandleListItems)
	api.POST("/items/reload", s.HandleReload)
	api.GET("/items/:index/detail", s.HandleGetDetail)
	api.GET("/settings", s.HandleGetSettings)
	api.PUT("/settings", s.HandleUpdateSettings)

	return router
}

// ListedItem is a news item together with its position in the feed.
type ListedItem struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ListItemsResponse represents the response for GET /api/v1/items.
type ListItemsResponse struct {
	Generation uuid.UUID    `json:"generation"`
	Items      []ListedItem `json:"items"`
	Total      int          `json:"total"`
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

func newListItemsResponse(feed newsfeed.Feed) ListItemsResponse {
	items := make([]ListedItem, 0, feed.Len())
	for i, item := range feed.Items {
		items = append(items, ListedItem{
			Index: i,
			Title: item.Title,
			URL:   item.URL,
		})
	}

	return ListItemsResponse{
		Generation: feed.Generation,
		Items:      items,
		Total:      len(items),
	}
}

// HandleListItems handles GET /api/v1/items.
func (s *APIServer) HandleListItems(c *gin.Context) {
	c.JSON(http.StatusOK, newListItemsResponse(s.session.State().Feed))
}

// HandleReload handles POST /api/v1/items/reload.
func (s *APIServer) HandleReload(c *gin.Context) {
	st := s.session.Reload(c.Request.Context())
	c.JSON(http.StatusOK, newListItemsResponse(st.Feed))
}

// HandleGetDetail handles GET /api/v1/items/:index/detail. The optional
// generation query parameter pins the request to a particular reload.
func (s *APIServer) HandleGetDetail(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_index", "Index must be an integer"))
		return
	}

	// Without a generation the current feed is used
	generation := uuid.Nil
	if raw := c.Query("generation"); raw != "" {
		generation, err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid_generation", "Invalid generation: "+err.Error()))
			return
		}
	}

	detail, err := s.session.OpenDetail(c.Request.Context(), generation, index)
	if err != nil {
		switch {
		case errors.Is(err, newsfeed.ErrStaleGeneration):
			c.JSON(http.StatusConflict, errorResponse("stale_generation", err.Error()))
		default:
			c.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// HandleGetSettings handles GET /api/v1/settings.
func (s *APIServer) HandleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.State().Config)
}

// HandleUpdateSettings handles PUT /api/v1/settings. The submission is
// applied as-is and the listing reloaded.
func (s *APIServer) HandleUpdateSettings(c *gin.Context) {
	var sub scraper.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	st := s.session.ApplySettings(c.Request.Context(), sub)
	c.JSON(http.StatusOK, gin.H{
		"settings": st.Config,
		"items":    newListItemsResponse(st.Feed),
	})
}
