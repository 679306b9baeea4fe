package middleware

import (
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler drains handler errors into the standard error response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// A handler already wrote an error response.
		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
