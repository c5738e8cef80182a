package respond

import "github.com/gin-gonic/gin"

// JSON writes a JSON response with the given status. Handlers go through
// this instead of c.JSON directly so the envelope stays in one place.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
