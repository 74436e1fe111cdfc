package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Every response carries the {message, data, meta} envelope.
func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{
		"message": message,
		"data":    data,
		"meta":    gin.H{},
	})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
		"data":    gin.H{},
		"meta":    gin.H{"status": code},
	})
}

// PaginatedResponse wraps list data with its window and total count.
type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
	Total int64       `json:"total"`
}

// pagination reads skip/limit query params, zero when absent.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.Query("skip"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return skip, limit
}
