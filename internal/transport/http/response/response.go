package response

import "github.com/gin-gonic/gin"

// Two envelope styles coexist: the chat/keyword surfaces wrap payloads in
// {success, data}, while the AI and session surfaces return bare bodies with
// {error} on failure.

func Data(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func Message(c *gin.Context, message string) {
	c.JSON(200, gin.H{"success": true, "message": message})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
