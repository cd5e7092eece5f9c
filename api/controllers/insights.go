package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smartspend-ai/smartspend-backend/api/middleware"
	"github.com/smartspend-ai/smartspend-backend/api/responses"
	"github.com/smartspend-ai/smartspend-backend/internal/insights"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
)

// InsightsSnapshot returns the caller's spending summary.
func InsightsSnapshot(svc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insights service unavailable"))
			return
		}

		userID := middleware.UserUUIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
