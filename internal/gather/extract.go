package gather

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// Dashboard files are loosely structured markdown. Two line shapes carry
// extractable key/value data:
//
//	**Health**: green
//	- arr: 120000
var (
	boldKVPattern   = regexp.MustCompile(`^\*\*([^*]+)\*\*\s*:\s*(.+)$`)
	bulletKVPattern = regexp.MustCompile(`^[-*]\s+([A-Za-z][A-Za-z0-9 _/-]{0,40})\s*:\s*(.+)$`)
)

const maxExtractedKeys = 20

// ExtractAccountData pulls a flat key/value snapshot out of a dashboard
// markdown file. Strictly best-effort: an unreadable file, unparseable
// line, or oversized document yields a partial (possibly empty) map and
// never an error.
func ExtractAccountData(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(data) >= maxExtractedKeys {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if m := boldKVPattern.FindStringSubmatch(line); m != nil {
			key, value = m[1], m[2]
		} else if m := bulletKVPattern.FindStringSubmatch(line); m != nil {
			key, value = m[1], m[2]
		} else {
			continue
		}

		key = normalizeKey(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if _, exists := data[key]; !exists {
			data[key] = value
		}
	}
	// Scanner errors (binary file, over-long line) leave whatever was
	// already collected.

	if len(data) == 0 {
		return nil
	}
	return data
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	return key
}
