// Package entity defines data structures shared by the web layer.
package entity

// Msg is the standard response envelope: success flag, message text and an
// optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}
