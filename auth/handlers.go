package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler signs an email/password user in against the auth provider
// and opens a session.
//
// POST /auth/login
func LoginHandler(resolver *Resolver, toolkit *IdentityToolkit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		idToken, err := toolkit.SignInWithPassword(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid provider token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": IssueSessionToken(identity),
			"user":  identity,
		})
	}
}

// SignupHandler creates a new email/password account. New accounts start as
// ordinary customers; no profile document is written.
//
// POST /auth/signup
func SignupHandler(resolver *Resolver, toolkit *IdentityToolkit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		idToken, err := toolkit.SignUp(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid provider token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token": IssueSessionToken(identity),
			"user":  identity,
		})
	}
}

// SessionHandler opens a session from a provider ID token obtained by a
// client that signed in with the provider directly.
//
// POST /auth/session
func SessionHandler(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid provider token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": IssueSessionToken(identity),
			"user":  identity,
		})
	}
}

// StatusHandler reports whether an initial identity resolution is still in
// flight, so clients can hold routing decisions until it settles.
//
// GET /auth/status
func StatusHandler(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"loading": resolver.Loading()})
	}
}

// GuestHandler opens an anonymous session with its own cart scope.
//
// POST /auth/guest
func GuestHandler(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := resolver.RegisterGuest()
		c.JSON(http.StatusOK, gin.H{
			"guest_id": identity.UID,
			"token":    IssueSessionToken(identity),
		})
	}
}

// LogoutHandler ends the caller's session.
//
// POST /auth/logout
func LogoutHandler(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		resolver.Logout(uidVal.(string))
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// ResetPasswordHandler asks the provider to send a password-reset email.
//
// POST /auth/reset-password
func ResetPasswordHandler(toolkit *IdentityToolkit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		if err := toolkit.SendPasswordReset(c.Request.Context(), input.Email); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send reset email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
	}
}
