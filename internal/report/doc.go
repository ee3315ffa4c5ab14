// Package report encodes evaluated output channels for humans (text) and
// machines (json, yaml).
package report
