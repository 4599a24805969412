package errors

import "github.com/gin-gonic/gin"

// Respond writes the error to the client with the status its kind maps to.
// This is the single place where domain errors become HTTP responses.
func Respond(c *gin.Context, err error) {
	c.JSON(Status(err), gin.H{"error": Message(err)})
}
