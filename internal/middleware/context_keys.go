package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader carries the actor identity resolved by the external
// authentication layer. This core trusts it as-is; authn/authz live outside.
const actorIDHeader = "X-Actor-ID"

// ActorIDMiddleware copies the actor header into the Gin context for handlers.
func ActorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(actorIDHeader); actor != "" {
			c.Set(string(actorIDKey), actor)
		}
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
