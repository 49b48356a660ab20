// Package handlers exposes the recipes API over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/services"
	"foodRecipesWebsite/internal/utils"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.BadRequestError(w, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps a service error to its status; anything that is
// not a service error is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logger.Log.WithFields(map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": utils.GetRequestID(r),
		}).WithError(err).Error("Request failed")
		utils.InternalServerError(w, "Something went wrong")
		return
	}

	status := http.StatusBadRequest
	switch svcErr.Kind {
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	}
	utils.RespondWithError(w, status, svcErr.Error())
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.BadRequestError(w, "Invalid id")
		return 0, false
	}
	return id, true
}

// BearerMiddleware authenticates "Authorization: Bearer <token>" and stores
// the user ID in the request context.
func BearerMiddleware(auth *services.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.AuthenticationError(w)
				return
			}

			userID, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				respondServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
		})
	}
}
