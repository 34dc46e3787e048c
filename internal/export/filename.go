package export

import (
	"regexp"
	"strings"
)

// DefaultFileName is used when no name has been entered.
const DefaultFileName = "My_CV.pdf"

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName derives the download name from a person's full name:
// "Jane Doe" becomes "Jane_Doe_CV.pdf". Path separators are replaced as well so the
// result is always a bare file name.
func FileName(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return DefaultFileName
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return whitespaceRun.ReplaceAllString(name, "_") + "_CV.pdf"
}

// ValidateFileName rejects names a saver must not write.
func ValidateFileName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return ErrInvalidFileName
	case strings.ContainsAny(name, `/\`):
		return ErrInvalidFileName
	}
	return nil
}
