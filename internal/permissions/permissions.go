// Package permissions holds the access policies as plain functions over the
// authenticated user, so they can be tested without HTTP plumbing.
package permissions

import (
	"net/http"

	"back_yamdb/internal/models"
)

// AdminOnly allows admins and superusers.
func AdminOnly(user *models.User) bool {
	return user != nil && user.IsAdmin()
}

// AdminOrReadOnly allows safe methods for everyone (including anonymous
// callers) and write methods for admins only.
func AdminOrReadOnly(user *models.User, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return AdminOnly(user)
}

// CanModifyContent decides whether user may update or delete a review or
// comment written by authorID.
func CanModifyContent(user *models.User, authorID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == authorID || user.IsModerator() || user.IsAdmin()
}

// CanChangeRole gates the role field on the self-profile endpoint: non-admin
// callers may not change their own role.
func CanChangeRole(user *models.User) bool {
	return AdminOnly(user)
}
