package model

import "strings"

const maxIDSlugLen = 40

// MeetingID derives the stable rendered identifier for a classified
// meeting: `<type>-<HHMM|hash8>-<title-slug>`. The same event classified
// the same way always yields the same identifier, which keeps re-renders
// byte-identical and prep filenames predictable.
func MeetingID(t MeetingType, e Event) string {
	return string(t) + "-" + e.TimeKey() + "-" + titleSlug(e.Title)
}

func titleSlug(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
		if b.Len() >= maxIDSlugLen {
			break
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
