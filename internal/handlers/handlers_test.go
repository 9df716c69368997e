package handlers

import (
	"context"
	"net/http"
	"testing"

	"universal-shop/internal/middleware"
	"universal-shop/internal/models"
)

func testTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	tc := NewTemplateCache()
	if err := tc.Load("../../templates"); err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return tc
}

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserKey, user)
	return r.WithContext(ctx)
}

func testUser() *models.User {
	return &models.User{
		TelegramID: 777,
		FirstName:  "Ada",
		Username:   "ada",
	}
}

func testAdmin() *models.User {
	u := testUser()
	u.IsAdmin = true
	return u
}
