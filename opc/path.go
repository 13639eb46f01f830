package opc

import (
	"path"
	"strings"
)

// RelsPath returns the name of the relationship part belonging to part:
// xl/workbook.xml has its relationships in xl/_rels/workbook.xml.rels. The
// package itself ("" or "/") uses _rels/.rels.
func RelsPath(part string) string {
	part = strings.TrimPrefix(part, "/")
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// ResolveTarget returns the part name a relationship target of source
// points to. Absolute targets are taken from the package root, relative
// ones from the folder of source.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)[1:]
	}
	return strings.TrimPrefix(path.Join(path.Dir("/"+strings.TrimPrefix(source, "/")), target), "/")
}
