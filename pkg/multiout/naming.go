package multiout

import (
	"net/url"
	"path"
	"strings"

	"github.com/rxtech-lab/multiout/pkg/task"
)

// InputAwareName prefixes candidate with the trailing directories of the
// attempt's input path, so output names mirror the layout of the input.
//
// The number of directories is read from task.ConfTrailingSegments. candidate
// is returned unchanged when the context has no input path or the setting is
// not positive. When the input path has fewer directories than requested, all
// of them are used.
//
//	input /a/b/c/file.txt, 2 segments, candidate part-m-00000 → b/c/part-m-00000
func InputAwareName(ctx task.Context, candidate string) string {
	inputPath, err := ctx.InputPath().Take()
	if err != nil {
		return candidate
	}

	n := ctx.Configuration().GetInt(task.ConfTrailingSegments, 0)
	if n <= 0 {
		return candidate
	}

	segments := trailingDirs(inputPath, n)
	if len(segments) == 0 {
		return candidate
	}

	return path.Join(append(segments, candidate)...)
}

// trailingDirs returns up to n directory names directly above the file in
// inputPath, top to bottom. Collection stops at the root or a drive volume.
func trailingDirs(inputPath string, n int) []string {
	dir := path.Dir(stripScheme(inputPath))

	segments := make([]string, 0, n)
	for len(segments) < n {
		name := path.Base(dir)
		if name == "" || name == "." || name == "/" || isVolume(name) {
			break
		}

		segments = append(segments, name)
		dir = path.Dir(dir)
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	return segments
}

// stripScheme reduces URIs like s3://bucket/a/b to their path and normalizes
// Windows separators.
func stripScheme(p string) string {
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			return u.Path
		}
	}

	return strings.ReplaceAll(p, "\\", "/")
}

// isVolume reports whether name is a Windows drive such as "C:".
func isVolume(name string) bool {
	if len(name) != 2 || name[1] != ':' {
		return false
	}

	c := name[0]

	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
