package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// SessionID records the advisor session under the key "session_id".
// Empty ids produce an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// VIN records a (possibly partial) VIN under the key "vin".
func VIN(v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String("vin", v)
}

// Vehicle groups make, model and year under the key "vehicle".
func Vehicle(make, model string, year int) slog.Attr {
	return Group("vehicle",
		slog.String("make", make),
		slog.String("model", model),
		slog.Int("year", year),
	)
}

// Query records the advisor's free-text query under the key "query".
func Query(q string) slog.Attr {
	return slog.String("query", q)
}

// PartNumber records a part number under the key "part_number".
func PartNumber(pn string) slog.Attr {
	return slog.String("part_number", pn)
}

// Results records a result count under the key "results".
func Results(n int) slog.Attr {
	return slog.Int("results", n)
}

// Backend records which storage backend served a call.
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
