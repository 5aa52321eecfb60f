package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyEntity     = "entity"
	KeyKind       = "kind"
	KeyMemberOf   = "memberof"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyEOL        = "eol"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Entity(name string) slog.Attr    { return slog.String(KeyEntity, name) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func MemberOf(parent string) slog.Attr {
	return slog.String(KeyMemberOf, parent)
}
func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func File(f string) slog.Attr   { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr    { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }
func EOL(eol string) slog.Attr {
	if eol == "\r\n" {
		return slog.String(KeyEOL, "crlf")
	}
	return slog.String(KeyEOL, "lf")
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
