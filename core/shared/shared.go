package shared

import "strings"

func ToTitle(s string) string {
	if s == "" {
		return s
	}
	first := strings.ToUpper(s[:1])
	rest := s[1:]
	return first + rest
}

// FunctionNameFromTable derives a default function name from a table
// identifier, e.g. "dbo.employee_records" -> "GetEmployeeRecords".
func FunctionNameFromTable(table string) string {
	if idx := strings.LastIndex(table, "."); idx >= 0 {
		table = table[idx+1:]
	}
	parts := strings.FieldsFunc(table, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	b.WriteString("Get")
	for _, p := range parts {
		b.WriteString(ToTitle(p))
	}
	return b.String()
}
