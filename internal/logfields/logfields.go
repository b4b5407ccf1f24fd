package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPhase      = "phase"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyDir        = "dir"
	KeyDocID      = "doc_id"
	KeyVersion    = "version"
	KeyLocale     = "locale"
	KeyHref       = "href"
	KeyTarget     = "target"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Phase(name string) slog.Attr     { return slog.String(KeyPhase, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Href(h string) slog.Attr         { return slog.String(KeyHref, h) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
