// Package xmlutil provides XML escaping utilities for prompt injection prevention.
package xmlutil

import "strings"

var markupReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMarkup escapes only &, < and >. Enough to stop content closing the
// surrounding tag while leaving JSON quotes readable for the model.
func EscapeMarkup(s string) string {
	return markupReplacer.Replace(s)
}

// Wrap returns content enclosed in <tag>...</tag> with markup escaped.
func Wrap(tag, content string) string {
	return "<" + tag + ">" + EscapeMarkup(content) + "</" + tag + ">"
}
