// Package fsutil provides file system utility functions.
package fsutil
