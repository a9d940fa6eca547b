// Package utils provides small conversion helpers for loosely typed input, such as
// attribute values of the catalog XML and query parameters.
package utils
