package doctext

import "strings"

const (
	LF   = "\n"
	CRLF = "\r\n"
)

// DetectEOL returns CRLF only when content has line breaks and all of them
// are CRLF. Mixed or missing CRLF yields LF.
func DetectEOL(content string) string {
	lf := strings.Count(content, "\n")
	if lf == 0 {
		return LF
	}
	if strings.Count(content, "\r\n") == lf {
		return CRLF
	}
	return LF
}

// NormalizeEOL rewrites every line break in content to eol.
func NormalizeEOL(content, eol string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if eol == LF {
		return content
	}
	return strings.ReplaceAll(content, "\n", eol)
}
