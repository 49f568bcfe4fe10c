package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nimbuscal/caldav/server/storage"
)

// RequestContext holds parsed information about the incoming CalDAV request.
type RequestContext struct {
	Resource Resource // Contains UserID, CalendarID, ObjectID, and ResourceType
	AuthUser string   // Authenticated user (from Basic Auth)
	Depth    int      // >3 is the same as infinity
	// Add other relevant context if needed
}

// CaldavHandler is the main HTTP handler for CalDAV requests under a specific prefix.
type CaldavHandler struct {
	Prefix       string // e.g., "/caldav/"
	Realm        string // Realm for Basic Auth
	Storage      storage.Storage
	MaxDepth     int // Optional: Max depth for PROPFIND requests, >3 for infinity
	URLConverter URLConverter
	Logger       *slog.Logger
}

// NewCaldavHandler creates a new CaldavHandler.
func NewCaldavHandler(prefix, realm string, storage storage.Storage, maxDepth int, converter URLConverter, logger *slog.Logger) *CaldavHandler {
	// Ensure prefix starts and ends with a slash for consistent parsing
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	if converter == nil {
		converter = defaultURLConverter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CaldavHandler{
		Prefix:       prefix,
		Realm:        realm,
		Storage:      storage,
		MaxDepth:     maxDepth,
		URLConverter: converter,
		Logger:       logger,
	}
}

// ServeHTTP handles incoming HTTP requests, performs authentication, parsing, and routing.
func (h *CaldavHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Logger.Debug("received request", "method", r.Method, "path", r.URL.Path)

	// 1. Basic Authentication Check
	authUser, ok := h.checkAuth(w, r)
	if !ok {
		// checkAuth already sent the 401 response
		return
	}

	// 2. Path Parsing (relative to the prefix)
	relativePath := strings.TrimPrefix(r.URL.Path, h.Prefix)
	// Optional: Trim trailing slash for consistency, unless it's significant for collections
	// relativePath = strings.TrimSuffix(relativePath, "/") // Be careful if trailing slash matters for PROPFIND on collections

	resource, err := h.URLConverter.ParsePath(relativePath)
	if err != nil {
		h.Logger.Warn("error parsing path", "path", relativePath, "error", err)
		http.Error(w, err.Error(), http.StatusNotFound) // Or BadRequest depending on error
		return
	}

	// Create request context with the parsed resource
	ctx := &RequestContext{
		Resource: resource,
		AuthUser: authUser,
	}

	h.Logger.Debug("parsed path",
		"type", ctx.Resource.ResourceType,
		"user", ctx.Resource.UserID,
		"calendar", ctx.Resource.CalendarID,
		"object", ctx.Resource.ObjectID)

	// 3. --- TODO: User Access Control Check ---
	// After identifying the resource and the authenticated user (ctx.AuthUser),
	// check if ctx.AuthUser is allowed to access the resource identified by
	// ctx.UserID, ctx.CalendarID etc. For example, normally ctx.AuthUser must
	// be equal to ctx.UserID unless delegation or public calendars are involved.
	if ctx.Resource.UserID != "" && ctx.Resource.UserID != ctx.AuthUser {
		// For now, let's assume users can only access their own resources
		http.Error(w, "Forbidden: Access denied to the requested resource", http.StatusForbidden)
		return
	}
	// --- End TODO ---

	depth := r.Header.Get("Depth")
	if depth == "" {
		ctx.Depth = 0 // Default depth
	} else if depth == "infinity" {
		ctx.Depth = 114514
	} else {
		// Parse depth as integer, default to 0 if invalid
		var err error
		ctx.Depth, err = strconv.Atoi(depth)
		if err != nil {
			h.Logger.Warn("invalid depth header, defaulting to 0", "depth", depth)
			ctx.Depth = 0
		}
		ctx.Depth = min(ctx.Depth, h.MaxDepth)
	}

	// 4. Routing based on HTTP Method (CalDAV methods)
	switch r.Method {
	case "PROPFIND":
		h.handlePropfind(w, r, ctx)
	case "REPORT":
		h.handleReport(w, r, ctx)
	case "PUT":
		h.handlePut(w, r, ctx)
	case "GET":
		h.handleGet(w, r, ctx)
	case "DELETE":
		h.handleDelete(w, r, ctx)
	case "MKCOL", "MKCALENDAR": // MKCALENDAR is often used instead of MKCOL for calendars
		h.handleMkCalendar(w, r, ctx)
	case "OPTIONS":
		h.handleOptions(w, r, ctx)
	// Add other CalDAV methods like COPY, MOVE if needed
	default:
		h.Logger.Warn("method not allowed", "method", r.Method)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleReport, handlePut, handleGet, handleDelete, and handleMkCalendar are
// implemented in report.go, put.go, get.go, delete.go, and mkcalendar.go
// respectively.

func (h *CaldavHandler) handleOptions(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
	h.Logger.Debug("OPTIONS received",
		"type", ctx.Resource.ResourceType,
		"user", ctx.Resource.UserID,
		"calendar", ctx.Resource.CalendarID,
		"object", ctx.Resource.ObjectID)
	// TODO: Set correct Allow and DAV headers based on ctx.Resource.ResourceType and capabilities
	w.Header().Set("Allow", "OPTIONS, PROPFIND, REPORT, GET, PUT, DELETE, MKCALENDAR") // Example, tailor this
	w.Header().Set("DAV", "1, 3, calendar-access")                                     // Example CalDAV capabilities
	w.WriteHeader(http.StatusOK)
}

