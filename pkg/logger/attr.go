package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Section records the request section being validated under the key
// "section".
func Section(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("section", name)
}
