package server

import (
	"github.com/beevik/etree"
	"github.com/nimbuscal/caldav/internal/xml/propfind"
	"github.com/nimbuscal/caldav/server/storage"
)

// encodePropfindResponse resolves req against res using the resolver tables
// in propfind_resolvers.go, then renders the result as a single-resource
// multistatus document keyed by the resource's own href.
func (h *CaldavHandler) encodePropfindResponse(req propfind.ResponseMap, res Resource, preload *storage.CalendarObject) (*etree.Document, error) {
	env := newPropEnv(h, res, preload)
	href, err := env.ResourceHref()
	if err != nil {
		return nil, err
	}
	resolved := h.resolvePropfind(req, res, preload)
	return propfind.EncodeResponse(resolved, href), nil
}

// handlePropfindServiceRoot answers a PROPFIND-shaped property request
// against the service root resource ("/").
func (h *CaldavHandler) handlePropfindServiceRoot(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, nil)
}

// handlePropfindPrincipal answers a PROPFIND-shaped property request against
// a principal resource.
func (h *CaldavHandler) handlePropfindPrincipal(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, nil)
}

// handlePropfindHomeSet answers a PROPFIND-shaped property request against a
// calendar-home-set resource.
func (h *CaldavHandler) handlePropfindHomeSet(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, nil)
}

// handlePropfindCollection answers a PROPFIND-shaped property request
// against a calendar collection resource.
func (h *CaldavHandler) handlePropfindCollection(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, nil)
}

// handlePropfindObject answers a PROPFIND-shaped property request against a
// calendar object resource, loading the object from storage.
func (h *CaldavHandler) handlePropfindObject(req propfind.ResponseMap, res Resource) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, nil)
}

// handlePropfindObjectWithObject is like handlePropfindObject, but uses an
// already-loaded object instead of fetching it from storage again, so
// calendar-query REPORTs don't re-read objects they already filtered.
func (h *CaldavHandler) handlePropfindObjectWithObject(req propfind.ResponseMap, res Resource, object storage.CalendarObject) (*etree.Document, error) {
	return h.encodePropfindResponse(req, res, &object)
}

// fetchChildren lists the immediate (and, for depth > 1, recursive)
// children of a collection-like resource, for PROPFIND Depth: 1/infinity
// handling. Objects and principals have no children of their own.
func (h *CaldavHandler) fetchChildren(depth int, parent Resource) ([]Resource, error) {
	if depth <= 0 {
		return nil, nil
	}

	switch parent.ResourceType {
	case storage.ResourceHomeSet:
		calendars, err := h.Storage.GetUserCalendars(parent.UserID)
		if err != nil {
			return nil, err
		}
		var children []Resource
		for _, cal := range calendars {
			child, err := h.URLConverter.ParsePath(cal.Path)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			if depth > 1 {
				grandchildren, err := h.fetchChildren(depth-1, child)
				if err != nil {
					return nil, err
				}
				children = append(children, grandchildren...)
			}
		}
		return children, nil

	case storage.ResourceCollection:
		paths, err := h.Storage.GetObjectPathsInCollection(parent.CalendarID)
		if err != nil {
			return nil, err
		}
		var children []Resource
		for _, p := range paths {
			child, err := h.URLConverter.ParsePath(p)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return children, nil

	default:
		return nil, nil
	}
}
