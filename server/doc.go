/*
Package server provides a CalDAV server implementation that can be integrated into Go applications.

# Basic Usage

The simplest way to use this package is with the provided in-memory storage:

	store := memory.New()
	handler := server.NewCaldavHandler("/caldav/", "My CalDAV Server", store, 3, nil, nil)
	http.Handle("/caldav/", handler)
	http.ListenAndServe(":8080", nil)

# URL Scheme

The server uses a fixed URL scheme:
  - /<userid> - User principal
  - /<userid>/cal - Calendar home
  - /<userid>/cal/<calendarid> - Calendar collection
  - /<userid>/cal/<calendarid>/<objectid> - Calendar object (event, todo, etc.)

# Custom Storage Backend

To implement your own storage backend, implement the storage.Storage interface
declared in server/storage/storage.go. It takes no context.Context: callers
that need cancellation or tracing should thread it through their own backend
rather than the interface signature.

	type Storage interface {
		GetUser(userID string) (*User, error)
		AuthUser(username, password string) (string, error)

		GetUserCalendars(userID string) ([]Calendar, error)
		GetCalendar(userID, calendarID string) (*Calendar, error)
		CreateCalendar(userID string, calendar *Calendar) error

		GetObjectsInCollection(calendarID string) ([]CalendarObject, error)
		GetObjectPathsInCollection(calendarID string) ([]string, error)
		GetObject(userID, calendarID, objectID string) (*CalendarObject, error)
		GetObjectByFilter(userID, calendarID string, filter *Filter) ([]CalendarObject, error)
		UpdateObject(userID, calendarID string, object *CalendarObject) (string, error)
		DeleteObject(userID, calendarID, objectID string) error
	}

GetObjectByFilter is the entry point for REPORT calendar-query requests: it
evaluates a Filter (a RFC 4791 comp-filter tree) against every object in a
collection, expanding RRULE/RDATE recurrence via the recurrence package
whenever a time-range filter lands on a recurring master.

# Error Handling

The storage package provides sentinel errors:

	var (
		ErrNotFound           = errors.New("resource not found")
		ErrInvalidInput       = errors.New("invalid input parameters")
		ErrPermissionDenied   = errors.New("permission denied")
		ErrConflict           = errors.New("resource conflict")
		ErrStorageUnavailable = errors.New("storage unavailable")
	)

Handlers compare returned errors against these sentinels with errors.Is to
pick the right HTTP status code.

# Calendar Objects

Calendar objects (events, todos) use the go-ical package for iCalendar format
handling. A CalendarObject holds one or more components: a recurring VEVENT
master plus any overridden instances (RECURRENCE-ID) live in the same object.

	event := ical.NewEvent()
	event.Props.SetText(ical.PropSummary, "Weekly sync")
	event.Props.SetDateTime(ical.PropDateTimeStart, startTime)
	event.Props.SetText(ical.PropRecurrenceRule, "FREQ=WEEKLY;COUNT=10")

	obj := &storage.CalendarObject{
		Path:      "/user789/cal/cal456/evt123.ics",
		Component: []*ical.Component{event.Component},
	}

# Recurrence Expansion

The recurrence package expands RRULE/RDATE/EXRULE/EXDATE into a concrete
occurrence stream. server/report.go and GetObjectByFilter use it to answer
time-range queries against recurring events without materializing every
instance up front; cmd/recurexpand exposes the same engine as a CLI.

# Testing

The storage/memory package provides an in-memory implementation that's useful for testing:

	func TestMyCalDAVApp(t *testing.T) {
		store := memory.New()
		handler := server.NewCaldavHandler("/caldav/", "Test Realm", store, 3, nil, nil)

		store.AddUser("testuser", "testuser", "secret", &storage.User{DisplayName: "Test User"})
		store.CreateCalendar("testuser", &storage.Calendar{SupportedComponents: []string{"VEVENT"}})

		// Run tests against handler...
	}
*/
package server
