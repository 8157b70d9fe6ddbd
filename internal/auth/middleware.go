package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
)

// Middleware validates Firebase ID tokens and resolves the acting
// principal. The role comes from the users collection, never from the
// token; an account document is created with the member role the first
// time a verified uid is seen.
func Middleware(authClient *fbauth.Client, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		email, _ := decoded.Claims["email"].(string)
		name, _ := decoded.Claims["name"].(string)
		picture, _ := decoded.Claims["picture"].(string)

		p, err := ensureUser(c.Request.Context(), st, decoded.UID, email, name, picture)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "resolve user: " + err.Error()})
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// DevMiddleware is the credential-less variant used with the memory store
// backend: it trusts X-User-Id and friends, defaulting to a demo account.
func DevMiddleware(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}

		p, err := ensureUser(c.Request.Context(), st,
			uid,
			c.GetHeader("X-User-Email"),
			c.GetHeader("X-User-Name"),
			c.GetHeader("X-User-Photo"),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "resolve user: " + err.Error()})
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

func ensureUser(ctx context.Context, st store.Store, uid, email, name, photoURL string) (domain.Principal, error) {
	doc, err := st.Get(ctx, store.Users, uid)
	if err == domain.ErrNotFound {
		if name == "" {
			name = email
		}
		err := st.Put(ctx, store.Users, uid, map[string]any{
			"email":       email,
			"displayName": name,
			"photoURL":    photoURL,
			"role":        string(domain.RoleMember),
			"createdAt":   domain.FormatTime(time.Now()),
		})
		if err != nil {
			return domain.Principal{}, err
		}
		return domain.Principal{ID: uid, Email: email, Role: domain.RoleMember}, nil
	}
	if err != nil {
		return domain.Principal{}, err
	}

	role := domain.Role(store.Str(doc.Data, "role"))
	if !role.Valid() {
		role = domain.RoleMember
	}
	return domain.Principal{
		ID:    uid,
		Email: store.Str(doc.Data, "email"),
		Role:  role,
	}, nil
}

// extractToken pulls the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
