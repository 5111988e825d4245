package tools

import (
	"net/http"
	"strconv"

	"community-app/internal/domain/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

type ToolResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	SubmittedBy uint   `json:"submitted_by"`
}

// GET /tools, public directory listing, optionally by category.
func (h *Handler) ListTools(c *gin.Context) {
	q := h.DB.Model(&tools.Tool{}).Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var list []tools.Tool
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tools"})
		return
	}

	out := make([]ToolResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// POST /tools, premium members only (enforced by middleware).
func (h *Handler) CreateTool(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		URL         string `json:"url" binding:"required,url"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tool := tools.Tool{
		UserID:      userID,
		Name:        body.Name,
		Description: body.Description,
		URL:         body.URL,
		Category:    body.Category,
	}
	if err := h.DB.Create(&tool).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save tool"})
		return
	}

	c.JSON(http.StatusOK, toResponse(tool))
}

// PUT /tools/:id, owner only.
func (h *Handler) UpdateTool(c *gin.Context) {
	userID := c.GetUint("user_id")
	tool, ok := h.ownedTool(c, userID)
	if !ok {
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		URL         *string `json:"url"`
		Category    *string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if body.Name != nil {
		tool.Name = *body.Name
	}
	if body.Description != nil {
		tool.Description = *body.Description
	}
	if body.URL != nil {
		tool.URL = *body.URL
	}
	if body.Category != nil {
		tool.Category = *body.Category
	}

	if err := h.DB.Save(&tool).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tool"})
		return
	}

	c.JSON(http.StatusOK, toResponse(tool))
}

// DELETE /tools/:id, owner only.
func (h *Handler) DeleteTool(c *gin.Context) {
	userID := c.GetUint("user_id")
	tool, ok := h.ownedTool(c, userID)
	if !ok {
		return
	}

	if err := h.DB.Delete(&tool).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tool"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tool deleted"})
}

func (h *Handler) ownedTool(c *gin.Context, userID uint) (tools.Tool, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tool id"})
		return tools.Tool{}, false
	}

	var tool tools.Tool
	if err := h.DB.First(&tool, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return tools.Tool{}, false
	}
	if tool.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your tool"})
		return tools.Tool{}, false
	}
	return tool, true
}

func toResponse(t tools.Tool) ToolResponse {
	return ToolResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		URL:         t.URL,
		Category:    t.Category,
		SubmittedBy: t.UserID,
	}
}
