package intro

import (
	"net/url"
	"strings"
	"time"
)

// TimestampLayout matches the millisecond ISO-8601 form browsers emit.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Collect builds a record from submitted form values, trimming every field and
// stamping the collection time in UTC. Unknown keys are dropped.
func Collect(values url.Values, now time.Time) Record {
	var rec Record
	for _, f := range Fields {
		rec.Set(f.Key, strings.TrimSpace(values.Get(f.Key)))
	}
	rec.Timestamp = now.UTC().Format(TimestampLayout)
	return rec
}

// Draft keeps the raw (untrimmed) values of the known fields so a form can be
// re-rendered exactly as the user left it.
func Draft(values url.Values) map[string]string {
	draft := make(map[string]string, len(Fields))
	for _, f := range Fields {
		if v := values.Get(f.Key); v != "" {
			draft[f.Key] = v
		}
	}
	return draft
}

// Values converts a plain map (JSON API bodies) into form values.
func Values(m map[string]string) url.Values {
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}
	return values
}
