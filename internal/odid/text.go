package odid

import "strings"

var (
	textCleaner   = strings.NewReplacer("\t", "", "\n", "", "\r", "")
	serialCleaner = strings.NewReplacer("\t", "", "\n", "", "\r", "", " ", "")
)

// asciiField decodes a fixed-width ASCII field. A single non-ASCII byte makes
// the whole field empty. NUL padding at the end is dropped.
func asciiField(data []byte) string {
	for _, b := range data {
		if b >= 0x80 {
			return ""
		}
	}
	return strings.TrimRight(string(data), "\x00")
}

// Cleaned removes tab, newline and carriage return characters
func Cleaned(s string) string {
	return textCleaner.Replace(s)
}

// CleanedForSerialNumber removes spaces as well as the characters Cleaned removes
func CleanedForSerialNumber(s string) string {
	return serialCleaner.Replace(s)
}
