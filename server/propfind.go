package server

import (
	"io"
	"net/http"

	"github.com/beevik/etree"
	"github.com/nimbuscal/caldav/internal/xml/propfind"
	"github.com/nimbuscal/caldav/server/storage"
)

// resolveOne resolves a single resource's properties into its own response document.
func (h *CaldavHandler) resolveOne(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	switch res.ResourceType {
	case storage.ResourceServiceRoot:
		return h.handlePropfindServiceRoot(req, res)
	case storage.ResourcePrincipal:
		return h.handlePropfindPrincipal(req, res)
	case storage.ResourceHomeSet:
		return h.handlePropfindHomeSet(req, res)
	case storage.ResourceCollection:
		return h.handlePropfindCollection(req, res)
	case storage.ResourceObject:
		return h.handlePropfindObject(req, res)
	default:
		return nil, nil
	}
}

func (h *CaldavHandler) handlePropfind(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
	h.Logger.Debug("PROPFIND received",
		"type", ctx.Resource.ResourceType,
		"user", ctx.Resource.UserID,
		"calendar", ctx.Resource.CalendarID,
		"object", ctx.Resource.ObjectID,
		"depth", ctx.Depth)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read PROPFIND body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	req, _ := propfind.ParsePropfindRequest(string(bodyBytes))

	doc, err := h.resolveOne(req, ctx.Resource)
	if doc == nil && err == nil {
		h.Logger.Warn("unsupported resource type for PROPFIND", "type", ctx.Resource.ResourceType)
		http.Error(w, "Unsupported resource type for PROPFIND", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Error("failed to resolve PROPFIND properties", "error", err)
		http.Error(w, "Error retrieving resource properties", http.StatusInternalServerError)
		return
	}

	docs := []*etree.Document{doc}

	if ctx.Depth > 0 {
		children, err := h.fetchChildren(ctx.Depth, ctx.Resource)
		if err != nil {
			h.Logger.Error("failed to fetch PROPFIND children", "error", err)
			http.Error(w, "Error retrieving child resources", http.StatusInternalServerError)
			return
		}
		for _, child := range children {
			childDoc, err := h.resolveOne(req, child)
			if err != nil {
				h.Logger.Error("failed to resolve PROPFIND properties for child", "child", child, "error", err)
				http.Error(w, "Error retrieving child resource properties", http.StatusInternalServerError)
				return
			}
			if childDoc != nil {
				docs = append(docs, childDoc)
			}
		}
	}

	mergedDoc, err := propfind.MergeResponses(docs)
	if err != nil {
		h.Logger.Error("failed to merge PROPFIND responses", "error", err)
		http.Error(w, "Error merging responses", http.StatusInternalServerError)
		return
	}

	xmlOutput, err := mergedDoc.WriteToString()
	if err != nil {
		h.Logger.Error("failed to serialize PROPFIND response", "error", err)
		http.Error(w, "Failed to generate response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusMultiStatus)
	if _, err := w.Write([]byte(xmlOutput)); err != nil {
		h.Logger.Error("failed to write PROPFIND response", "error", err)
	}
}
