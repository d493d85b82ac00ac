package util

import "strings"

// Placeholders builds "p(1), p(2), ..., p(n)" for a driver's bind style.
func Placeholders(n int, start int, placeholder func(int) string) string {
	var buf strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(placeholder(start + i))
	}
	return buf.String()
}

func QuestionMark(int) string {
	return "?"
}
