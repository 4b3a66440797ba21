// Package wildcard expands destination filename patterns against source file
// names the way copy/move commands do.
package wildcard

import "strings"

// Parts is a path decomposed into its drive, directory, base name and extension.
// Dir keeps its trailing separator and Ext keeps its leading dot.
type Parts struct {
	Drive string
	Dir   string
	Base  string
	Ext   string
}

// SplitPath decomposes path using Windows rules. Both '\' and '/' are treated
// as directory separators and the extension starts at the last dot of the
// final path component.
func SplitPath(path string) Parts {
	var p Parts

	if len(path) >= 2 && path[1] == ':' {
		p.Drive = path[:2]
		path = path[2:]
	}

	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		p.Dir = path[:i+1]
		path = path[i+1:]
	}

	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		p.Ext = path[i:]
		path = path[:i]
	}

	p.Base = path
	return p
}

// Expand builds a concrete destination name for source from destPattern.
//
// The first '*' in the pattern's base name is replaced with the source's base
// name, and the first '*' in the pattern's extension with the source's
// extension. Any further '*' in either part is dropped. A pattern without '*'
// is returned unchanged. If the expanded extension ends up empty the source
// extension is kept, so "*" applied to "report.txt" yields "report.txt".
//
// Only the last dot splits base from extension, so:
//
//	Expand("one.two.three", "*.txt")   == "one.two.txt"
//	Expand("one.two.three", "*.*.txt") == "one.two..txt"
func Expand(source, destPattern string) string {
	if !strings.Contains(destPattern, "*") {
		return destPattern
	}

	src := SplitPath(source)
	dst := SplitPath(destPattern)

	srcExt := strings.TrimPrefix(src.Ext, ".")
	dstExt := strings.TrimPrefix(dst.Ext, ".")

	ext := expandPart(srcExt, dstExt)
	name := expandPart(src.Base, dst.Base)

	switch {
	case ext != "":
		name += "." + ext
	case srcExt != "":
		name += "." + srcExt
	}

	return dst.Drive + dst.Dir + name
}

// expandPart replaces the first '*' in dest with source and removes the rest.
func expandPart(source, dest string) string {
	i := strings.IndexByte(dest, '*')
	if i < 0 {
		return dest
	}

	return dest[:i] + source + strings.ReplaceAll(dest[i+1:], "*", "")
}

// HasWildcards reports whether pattern contains '*' or '?'.
func HasWildcards(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}
