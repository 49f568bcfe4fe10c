package server

import (
	"io"
	"net/http"

	"github.com/emersion/go-ical"
	"github.com/nimbuscal/caldav/internal/xml/mkcalendar"
	"github.com/nimbuscal/caldav/internal/xml/props"
	"github.com/nimbuscal/caldav/server/storage"
)

func (h *CaldavHandler) handleMkCalendar(w http.ResponseWriter, r *http.Request, ctx *RequestContext) {
	h.Logger.Debug("MKCALENDAR/MKCOL received",
		"type", ctx.Resource.ResourceType,
		"user", ctx.Resource.UserID,
		"calendar", ctx.Resource.CalendarID,
		"object", ctx.Resource.ObjectID)
	if ctx.Resource.ResourceType != storage.ResourceCollection {
		http.Error(w, "Method Not Allowed: MKCALENDAR can only be used to create a calendar collection", http.StatusMethodNotAllowed)
		return
	}

	// parse request body
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}
	properties, err := mkcalendar.ParseRequest(string(bodyBytes))
	if err != nil {
		h.Logger.Error("failed to parse MKCALENDAR request", "error", err)
		http.Error(w, "Failed to parse MKCALENDAR request", http.StatusBadRequest)
		return
	}

	cal := &storage.Calendar{
		SupportedComponents: []string{}, // Initialize to avoid nil
	}

	// Default to a basic VCALENDAR structure
	cal.CalendarData = ical.NewCalendar()
	cal.CalendarData.Props.SetText(ical.PropProductID, "-//libcaldora//CalDAV Server//EN")
	cal.CalendarData.Props.SetText(ical.PropVersion, "2.0")

	// Process provided properties
	for key, prop := range properties {
		switch key {
		case "displayname":
			if dn, ok := prop.(*props.DisplayName); ok && dn.Value != "" {
				cal.CalendarData.Props.SetText(ical.PropName, dn.Value)
				h.Logger.Debug("setting calendar name", "name", dn.Value)
			}
		case "calendar-description":
			if desc, ok := prop.(*props.CalendarDescription); ok && desc.Value != "" {
				cal.CalendarData.Props.SetText(ical.PropDescription, desc.Value)
				h.Logger.Debug("setting calendar description", "description", desc.Value)
			}
		case "calendar-timezone":
			if tz, ok := prop.(*props.CalendarTimezone); ok && tz.Value != "" {
				// Store the timezone string in calendar data
				// This is a simplification - proper timezone parsing would be better
				vtimezone := &ical.Component{
					Name:  ical.CompTimezone,
					Props: make(ical.Props),
				}
				vtimezone.Props.SetText(ical.PropTimezoneID, tz.Value)
				cal.CalendarData.Children = append(cal.CalendarData.Children, vtimezone)
				h.Logger.Debug("setting calendar timezone", "timezone", tz.Value)
			}
		case "supported-calendar-component-set":
			if compSet, ok := prop.(*props.SupportedCalendarComponentSet); ok && len(compSet.Components) > 0 {
				cal.SupportedComponents = compSet.Components
				h.Logger.Debug("setting supported components", "components", compSet.Components)
			}
		case "calendar-color", "color":
			// Handle both Apple and Google color properties
			var colorValue string
			if csColor, ok := prop.(*props.CalendarColor); ok && csColor.Value != "" {
				colorValue = csColor.Value
			} else if gColor, ok := prop.(*props.Color); ok && gColor.Value != "" {
				colorValue = gColor.Value
			}

			if colorValue != "" {
				cal.CalendarData.Props.SetText(ical.PropColor, colorValue)
				h.Logger.Debug("setting calendar color", "color", colorValue)
			}
		case "timezone":
			// Google specific timezone
			if tz, ok := prop.(*props.Timezone); ok && tz.Value != "" {
				// Store in a custom property or handle as needed
				cal.CalendarData.Props.SetText("X-TIMEZONE", tz.Value)
				h.Logger.Debug("setting google timezone", "timezone", tz.Value)
			}
		default:
			// Ignore unknown or unsupported properties
			h.Logger.Debug("ignoring unsupported property", "property", key)
		}
	}

	// Ensure we have required properties
	if len(cal.SupportedComponents) == 0 {
		// Default to supporting VEVENT if not specified
		cal.SupportedComponents = []string{"VEVENT"}
		h.Logger.Debug("no component set specified, defaulting to VEVENT")
	}

	err = h.Storage.CreateCalendar(ctx.Resource.UserID, cal)
	if err != nil {
		h.Logger.Error("failed to create calendar", "error", err)
		http.Error(w, "Failed to create calendar", http.StatusInternalServerError)
		return
	}
	if cal.ETag == "" || cal.Path == "" {
		h.Logger.Error("failed to create calendar: etag or path is empty")
		http.Error(w, "Failed to create calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", cal.Path)
	w.Header().Set("ETag", cal.ETag)
	w.WriteHeader(http.StatusCreated)
}
