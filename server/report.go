package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	cmg "github.com/nimbuscal/caldav/internal/xml/calendar-multiget"
	cq "github.com/nimbuscal/caldav/internal/xml/calendar-query"
	"github.com/nimbuscal/caldav/internal/xml/propfind"
	"github.com/nimbuscal/caldav/server/storage"
)

func (h *CaldavHandler) handleReport(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
	h.Logger.Debug("REPORT received",
		"type", ctx.Resource.ResourceType,
		"user", ctx.Resource.UserID,
		"calendar", ctx.Resource.CalendarID,
		"object", ctx.Resource.ObjectID)

	// Read the request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Parse XML
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		http.Error(w, "Error parsing XML request body", http.StatusBadRequest)
		return
	}

	// Get the root element
	root := doc.Root()
	if root == nil {
		http.Error(w, "Invalid XML: no root element", http.StatusBadRequest)
		return
	}

	// Extract local name (removing namespace prefix if present)
	tagName := root.Tag
	if idx := strings.Index(tagName, ":"); idx != -1 {
		tagName = tagName[idx+1:]
	}

	// Clone the request for handlers to re-read the body
	reqClone := r.Clone(r.Context())
	reqClone.Body = io.NopCloser(strings.NewReader(string(body)))

	// Route to appropriate handler based on report type
	switch tagName {
	case "calendar-multiget":
		h.handleCalendarMultiget(w, reqClone, ctx)
	case "calendar-query":
		h.handleCalendarQuery(w, reqClone, ctx)
	case "freebusy-query":
		h.handleFreebusyQuery(w, reqClone, ctx)
	case "schedule-query":
		h.handleScheduleQuery(w, reqClone, ctx)
	case "availability-query":
		h.handleAvailabilityQuery(w, reqClone, ctx)
	default:
		h.Logger.Warn("unsupported REPORT type", "type", tagName)
		http.Error(w, "Unsupported report type", http.StatusBadRequest)
	}
}

func (h *CaldavHandler) handleCalendarMultiget(w http.ResponseWriter, r *http.Request, _ *RequestContext) {
	// get resources and requested properties
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read calendar-multiget body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	bodyStr := string(bodyBytes)

	req, resourceLinks := cmg.ParseRequest(bodyStr)

	h.Logger.Debug("parsed calendar-multiget request", "resources", len(resourceLinks))

	// use PROPFIND handler to get properties
	var docs []*etree.Document
	for _, resourceLink := range resourceLinks {
		resource, err := h.URLConverter.ParsePath(resourceLink)
		if err != nil {
			h.Logger.Error("failed to parse resource link", "link", resourceLink, "error", err)
			http.Error(w, "Error retrieving resource", http.StatusInternalServerError)
			return
		}

		var doc *etree.Document
		switch resource.ResourceType {
		case storage.ResourceObject:
			doc, err = h.handlePropfindObject(req, resource)
		case storage.ResourceCollection:
			doc, err = h.handlePropfindCollection(req, resource)
		case storage.ResourceHomeSet:
			doc, err = h.handlePropfindHomeSet(req, resource)
		case storage.ResourcePrincipal:
			doc, err = h.handlePropfindPrincipal(req, resource)
		default:
			h.Logger.Warn("unsupported resource type for calendar-multiget", "type", resource.ResourceType)
			http.Error(w, "Unsupported resource type", http.StatusBadRequest)
			return
		}

		if err != nil {
			h.Logger.Error("failed to resolve propfind for resource", "type", resource.ResourceType, "error", err)
			http.Error(w, "Error retrieving resource", http.StatusInternalServerError)
			return
		}
		docs = append(docs, doc)
	}

	mergedDoc, err := propfind.MergeResponses(docs)
	if err != nil {
		h.Logger.Error("failed to merge calendar-multiget responses", "error", err)
		http.Error(w, "Error merging responses", http.StatusInternalServerError)
		return
	}

	// Write response
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusMultiStatus) // 207 Multi-Status

	// Serialize and write the XML document
	xmlOutput, err := mergedDoc.WriteToString()
	if err != nil {
		h.Logger.Error("failed to serialize calendar-multiget response", "error", err)
		http.Error(w, "Failed to generate response", http.StatusInternalServerError)
		return
	}

	if _, err := w.Write([]byte(xmlOutput)); err != nil {
		h.Logger.Error("failed to write calendar-multiget response", "error", err)
	}
}

func (h *CaldavHandler) handleCalendarQuery(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read calendar-query body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	bodyStr := string(bodyBytes)

	req, filter, err := cq.ParseRequest(bodyStr)
	if err != nil {
		h.Logger.Error("failed to parse calendar-query request", "error", err)
		http.Error(w, "Error parsing request", http.StatusBadRequest)
		return
	}

	docs := []*etree.Document{}
	switch ctx.Resource.ResourceType {
	case storage.ResourceObject:
		object, err := h.Storage.GetObject(ctx.Resource.UserID, ctx.Resource.CalendarID, ctx.Resource.ObjectID)
		if err != nil {
			h.Logger.Error("failed to get object for calendar-query", "error", err)
			http.Error(w, "Error retrieving object", http.StatusInternalServerError)
			return
		}
		if !filter.Validate(object) {
			h.Logger.Debug("object does not match calendar-query filter", "object", ctx.Resource.ObjectID)
			http.Error(w, "Object does not match filter", http.StatusNotFound)
			return
		}
		doc, err := h.handlePropfindObjectWithObject(req, ctx.Resource, *object)
		if err != nil {
			h.Logger.Error("failed to resolve propfind for object", "error", err)
			http.Error(w, "Error retrieving object", http.StatusInternalServerError)
			return
		}
		docs = append(docs, doc)
	case storage.ResourceCollection:
		objects, err := h.Storage.GetObjectByFilter(ctx.Resource.UserID, ctx.Resource.CalendarID, filter)
		if err != nil {
			h.Logger.Error("failed to get objects by filter", "error", err)
			http.Error(w, "Error retrieving objects", http.StatusInternalServerError)
			return
		}
		for _, object := range objects {
			doc, err := h.handlePropfindObjectWithObject(req, ctx.Resource, object)
			if err != nil {
				h.Logger.Error("failed to resolve propfind for object", "error", err)
				http.Error(w, "Error retrieving object", http.StatusInternalServerError)
				return
			}
			docs = append(docs, doc)
		}
	default:
		// bad request, only collection & object
		h.Logger.Warn("unsupported resource type for calendar-query", "type", ctx.Resource.ResourceType)
		http.Error(w, "Unsupported resource type for calendar-query", http.StatusBadRequest)
		return
	}

	mergedDoc, err := propfind.MergeResponses(docs)
	if err != nil {
		h.Logger.Error("failed to merge calendar-query responses", "error", err)
		http.Error(w, "Error merging responses", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusMultiStatus) // 207 Multi-Status
	xmlOutput, err := mergedDoc.WriteToString()
	if err != nil {
		h.Logger.Error("failed to serialize calendar-query response", "error", err)
		http.Error(w, "Failed to generate response", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte(xmlOutput)); err != nil {
		h.Logger.Error("failed to write calendar-query response", "error", err)
	}
}

func (h *CaldavHandler) handleFreebusyQuery(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
}

func (h *CaldavHandler) handleScheduleQuery(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
}

func (h *CaldavHandler) handleAvailabilityQuery(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
}
