package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smartspend-ai/smartspend-backend/api/middleware"
	"github.com/smartspend-ai/smartspend-backend/api/responses"
	"github.com/smartspend-ai/smartspend-backend/api/validators"
	"github.com/smartspend-ai/smartspend-backend/internal/shoppinglist"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
)

// ShoppingListGenerate creates a budget-bound list for the caller.
func ShoppingListGenerate(svc shoppinglist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping list service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		budget, err := validators.ParseQueryFloat(r, "budget")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Generate(r.Context(), userID, budget)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, list)
	}
}

// ShoppingListHistory returns the caller's recent lists, newest first.
func ShoppingListHistory(svc shoppinglist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shopping list service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		lists, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lists)
	}
}
