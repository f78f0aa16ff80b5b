package manifest

import (
	"bufio"
	"bytes"
	"regexp"
)

var packageNameLine = regexp.MustCompile(`registry:packageName\s+"([^"]+)"`)

// FastExtractPackageName scans Turtle source line by line for the
// registry:packageName literal without building a Document or Graph, for
// callers (e.g. registry ingestion) that only need the package name and
// would otherwise pay for a full parse.
func FastExtractPackageName(source []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		if m := packageNameLine.FindSubmatch(scanner.Bytes()); m != nil {
			return string(m[1]), true
		}
	}
	return "", false
}
