// Package qt reads and writes Qt theme configuration: kdeglobals
// [Colors:*] sections and Kvantum .kvconfig files.
package qt

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// iniData is a parsed INI document: section name -> key -> value. kdeglobals
// and kvconfig are strict line formats, so this is a hand reader in place of
// a dependency the ecosystem never reaches for here.
type iniData map[string]map[string]string

// parseINI reads INI text. Blank lines and #/; comments are skipped; keys
// before any section header land in the "" section. Malformed lines (no '='
// outside a header) are reported.
func parseINI(data []byte) (iniData, error) {
	out := make(iniData)
	section := ""

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header %q", i+1, line)
			}
			section = strings.TrimSpace(line[1 : len(line)-1])
			if _, ok := out[section]; !ok {
				out[section] = make(map[string]string)
			}
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 1 {
			return nil, fmt.Errorf("line %d: expected key=value, got %q", i+1, line)
		}
		if _, ok := out[section]; !ok {
			out[section] = make(map[string]string)
		}
		out[section][strings.TrimSpace(line[:eq])] = strings.TrimSpace(line[eq+1:])
	}
	return out, nil
}

// writeINI renders sections and keys in ascending order so output is
// byte-stable for identical input.
func writeINI(data iniData) []byte {
	sections := make([]string, 0, len(data))
	for name := range data {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	var buf bytes.Buffer
	for i, name := range sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if name != "" {
			fmt.Fprintf(&buf, "[%s]\n", name)
		}
		keys := make([]string, 0, len(data[name]))
		for k := range data[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&buf, "%s=%s\n", k, data[name][k])
		}
	}
	return buf.Bytes()
}
