package logger

import (
	"log/slog"
	"strconv"
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

// Component records the originating component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Provider records the external identity provider id under the key "provider".
func Provider(id string) slog.Attr {
	return slog.String("provider", id)
}

// AccountID records the local account identifier under the key "account_id".
// If id is nil, it returns an empty Attr.
func AccountID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("account_id", id)
}

// Phase records the login flow phase under the key "phase".
func Phase(phase string) slog.Attr {
	return slog.String("phase", phase)
}
