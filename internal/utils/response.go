package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// Notice responds success with an informational message alongside data,
// e.g. the "already saved" outcome.
func Notice(c *gin.Context, msg string, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"notice":  msg,
		"data":    data,
	})
}

// FormatValidationErrors turns validator/v10 binding failures into
// user-facing messages.
func FormatValidationErrors(err error) []string {
	var errors []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", verr.Field(), verr.Tag())
			if verr.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, verr.Param())
			}
			errors = append(errors, element)
		}
	}
	if len(errors) == 0 && err != nil {
		errors = append(errors, err.Error())
	}
	return errors
}
