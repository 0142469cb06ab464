package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cleverai/api/internal/service"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Company string `json:"company"`
	Message string `json:"message" binding:"required,min=10"`
}

func (r *contactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("contact submission failed")
		respondError(c, http.StatusInternalServerError, "Failed to process contact form submission")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact form submitted successfully",
		"data":    contact,
	})
}
