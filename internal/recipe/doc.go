// Package recipe parses the line-oriented recipe markup into typed elements
// and discovers recipe files on a filesystem. Each line maps to at most one
// element; the first matching prefix decides its kind.
package recipe
