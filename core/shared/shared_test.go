package shared

import "testing"

func TestToTitle(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"e":        "E",
		"employee": "Employee",
		"Already":  "Already",
	}
	for in, want := range cases {
		if got := ToTitle(in); got != want {
			t.Errorf("ToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFunctionNameFromTable(t *testing.T) {
	cases := map[string]string{
		"employees":            "GetEmployees",
		"dbo.employees":        "GetEmployees",
		"employee_records":     "GetEmployeeRecords",
		"dbo.employee-records": "GetEmployeeRecords",
	}
	for in, want := range cases {
		if got := FunctionNameFromTable(in); got != want {
			t.Errorf("FunctionNameFromTable(%q) = %q, want %q", in, got, want)
		}
	}
}
