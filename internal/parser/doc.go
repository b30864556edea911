// Package parser extracts descriptions and heading outlines from the
// archive's markdown pages.
package parser
