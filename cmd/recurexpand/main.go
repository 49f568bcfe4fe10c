// Command recurexpand expands an RRULE against a DTSTART and prints the
// resulting occurrences, for manual debugging of a rule outside a running
// CalDAV server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nimbuscal/caldav/server/recurrence"
)

const timeLayout = "2006-01-02T15:04:05"

func main() {
	var (
		rruleFlag                = flag.String("rrule", "", "RRULE value, without the \"RRULE:\" prefix (required)")
		dtstartFlag              = flag.String("dtstart", "", "DTSTART in "+timeLayout+" local time, or with a trailing Z for UTC (required)")
		rangeStart               = flag.String("range-start", "", "only print occurrences on or after this instant (same format as -dtstart)")
		rangeEnd                 = flag.String("range-end", "", "only print occurrences on or before this instant (same format as -dtstart)")
		limit                    = flag.Int("limit", 50, "maximum number of occurrences to print")
		jsonOut                  = flag.Bool("json", false, "print occurrences as a JSON array instead of one per line")
		countConstraintFailures  = flag.Bool("count-constraint-failures", true,
			"when false, a COUNT on the RRULE bounds occurrences accepted by -range-start/-range-end "+
				"instead of raw generated instants that fall outside the range")
	)
	flag.Parse()

	if *rruleFlag == "" || *dtstartFlag == "" {
		fmt.Fprintln(os.Stderr, "recurexpand: -rrule and -dtstart are required")
		flag.Usage()
		os.Exit(2)
	}

	dtstart, err := parseInstant(*dtstartFlag)
	if err != nil {
		fatalf("invalid -dtstart: %v", err)
	}

	rule, err := recurrence.ParseRule(*rruleFlag, dtstart)
	if err != nil {
		fatalf("invalid -rrule: %v", err)
	}

	start := dtstart
	if *rangeStart != "" {
		start, err = parseInstant(*rangeStart)
		if err != nil {
			fatalf("invalid -range-start: %v", err)
		}
	}
	end := dtstart.AddDate(100, 0, 0)
	if *rangeEnd != "" {
		end, err = parseInstant(*rangeEnd)
		if err != nil {
			fatalf("invalid -range-end: %v", err)
		}
	}

	pred := recurrence.RangePredicate{Start: start, End: end}
	occurrences, err := recurrence.Transform(rule, 0, pred, *countConstraintFailures, recurrence.DefaultConfig)
	if err != nil {
		fatalf("expansion failed: %v", err)
	}
	if len(occurrences) > *limit {
		occurrences = occurrences[:*limit]
	}

	if *jsonOut {
		printJSON(occurrences)
		return
	}
	for _, occ := range occurrences {
		fmt.Println(occ.Start.Format(time.RFC3339))
	}
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(timeLayout, s, time.Local)
}

func printJSON(occurrences []recurrence.Occurrence) {
	type occurrenceJSON struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	out := make([]occurrenceJSON, len(occurrences))
	for i, occ := range occurrences {
		out[i] = occurrenceJSON{Start: occ.Start.Format(time.RFC3339), End: occ.End.Format(time.RFC3339)}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("encoding output: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "recurexpand: "+format+"\n", args...)
	os.Exit(1)
}
