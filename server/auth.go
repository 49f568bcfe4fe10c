package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// checkAuth enforces Basic Authentication. Returns the username and true if successful.
func (h *CaldavHandler) checkAuth(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		h.Logger.Info("authentication required - no auth header")
		h.requireAuth(w)
		return "", false
	}

	if !strings.HasPrefix(authHeader, "Basic ") {
		h.Logger.Error("invalid authorization header format")
		http.Error(w, "Bad Request: Invalid Authorization header format", http.StatusBadRequest)
		return "", false
	}

	encodedCredentials := strings.TrimPrefix(authHeader, "Basic ")
	decodedBytes, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		h.Logger.Error("failed to decode base64 credentials",
			"error", err)
		http.Error(w, "Bad Request: Invalid base64 encoding", http.StatusBadRequest)
		return "", false
	}

	credentials := string(decodedBytes)
	parts := strings.SplitN(credentials, ":", 2)
	if len(parts) != 2 {
		h.Logger.Error("invalid format for decoded credentials")
		http.Error(w, "Bad Request: Invalid credentials format", http.StatusBadRequest)
		return "", false
	}

	username, password := parts[0], parts[1]
	userID, err := h.Storage.AuthUser(username, password)
	if err != nil {
		h.Logger.Warn("authentication failed",
			"user", username,
			"error", err)
		h.requireAuth(w)
		return "", false
	}

	return userID, true
}

// requireAuth sends a 401 Unauthorized response asking for Basic Auth.
func (h *CaldavHandler) requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s"`, h.Realm))
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
