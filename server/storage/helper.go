package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

func IcalEventToICS(event ical.Event) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Caldora//Go Calendar//EN")

	// Ensure DTSTAMP is present
	if event.Props.Get(ical.PropDateTimeStamp) == nil {
		event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())
	}

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

func ICSToICalEvent(ics string) (*ical.Event, error) {
	r := strings.NewReader(ics)
	dec := ical.NewDecoder(r)

	cal, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, fmt.Errorf("no events found in calendar")
	}
	if len(events) > 1 {
		return nil, fmt.Errorf("multiple events found in calendar")
	}

	return &events[0], nil
}

// ICalCompToICS wraps one or more bare components (VEVENT, VTODO, ...) in a
// VCALENDAR and encodes the result. If removeCalendarWrapper is true, the
// BEGIN:VCALENDAR/END:VCALENDAR envelope and calendar-level properties are
// stripped from the output, leaving just the component blocks.
func ICalCompToICS(components []ical.Component, removeCalendarWrapper bool) (string, error) {
	if len(components) == 0 {
		return "", errors.New("no components to encode")
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Caldora//Go Calendar//EN")

	for i := range components {
		c := components[i]
		cal.Children = append(cal.Children, &c)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}

	if !removeCalendarWrapper {
		return buf.String(), nil
	}
	return stripCalendarWrapper(buf.String()), nil
}

// stripCalendarWrapper removes the VCALENDAR envelope and its direct
// properties (VERSION, PRODID, CALSCALE, ...), leaving nested component
// blocks (VEVENT, VTODO, VTIMEZONE, ...) intact.
func stripCalendarWrapper(ics string) string {
	lines := strings.Split(ics, "\r\n")
	var out []string
	depth := 0
	for _, line := range lines {
		switch {
		case line == "BEGIN:VCALENDAR":
			depth++
			continue
		case line == "END:VCALENDAR":
			depth--
			continue
		case depth == 1 && !strings.HasPrefix(line, "BEGIN:") && !strings.HasPrefix(line, "END:"):
			continue // a calendar-level property, not part of a nested component
		}
		if strings.HasPrefix(line, "BEGIN:") {
			depth++
		} else if strings.HasPrefix(line, "END:") {
			depth--
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\r\n")
}

// ICSToICalComp decodes raw iCalendar text into its top-level components.
// It accepts both a full VCALENDAR document and a bare component (or
// sequence of components) without a VCALENDAR wrapper, since some PUT
// clients send a single VEVENT/VTODO directly.
func ICSToICalComp(ics string) ([]*ical.Component, error) {
	trimmed := strings.TrimSpace(ics)
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		trimmed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Caldora//Go Calendar//EN\r\n" +
			trimmed + "\r\nEND:VCALENDAR"
	}

	dec := ical.NewDecoder(strings.NewReader(trimmed))
	cal, err := dec.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	var comps []*ical.Component
	for _, child := range cal.Children {
		if child.Name == ical.CompTimezone {
			continue // VTIMEZONE describes the calendar, it isn't an object itself
		}
		comps = append(comps, child)
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("no components found in calendar")
	}
	return comps, nil
}
