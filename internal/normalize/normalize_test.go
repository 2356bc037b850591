package normalize

import "testing"

func TestRegisterScientificNotation(t *testing.T) {
	got := Register("9.20423E+11")
	want := Register("920423000000")
	if got != want || got != "920423000000" {
		t.Fatalf("scientific and plain forms diverge: %q vs %q", got, want)
	}
}

func TestRegisterFallbacks(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"920423104001", "920423104001"},
		{"920423104001.0", "920423104001"},
		{"ABC12345XYZ", "12345"},
		{"REG-92042 3104", "920423104"},
		{"AB1", "AB1"},
		{"AB1.0", "AB1"},
		{"", ""},
		{"nan", ""},
		{"NaN", ""},
	}
	for _, c := range cases {
		if got := Register(c.in); got != c.want {
			t.Fatalf("Register(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRegisterNonFiniteAndOverflow(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"inf", "inf"},
		{"+Inf", "+Inf"},
		{"-inf", "-inf"},
		// Past int64 range the float parse is abandoned and every digit
		// of the raw value is kept.
		{"92233720368547758080", "92233720368547758080"},
		{"920423104001920423104001", "920423104001920423104001"},
	}
	for _, c := range cases {
		if got := Register(c.in); got != c.want {
			t.Fatalf("Register(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSubjectNameStarVariants(t *testing.T) {
	for _, in := range []string{
		"*Constitution of India",
		"∗Constitution of India",
		"✱Constitution  of India",
		"Constitution of India",
	} {
		if got := SubjectName(in); got != "CONSTITUTION OF INDIA" {
			t.Fatalf("SubjectName(%q) = %q", in, got)
		}
	}
}

func TestSubjectNameNoiseStripping(t *testing.T) {
	got := SubjectName("  Data Structures & Algorithms (Lab) - I:  Part/2, #extra  ")
	want := "DATA STRUCTURES & ALGORITHMS (LAB) - I: PART/2, EXTRA"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDOBFormats(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2003-06-15", "15-Jun-2003"},
		{"15-Jun-2003", "15-Jun-2003"},
		{"15-JUN-2003", "15-Jun-2003"},
		{"15/Jun/2003", "15-Jun-2003"},
		{"15/06/2003", "15-Jun-2003"},
		{"15-06-2003", "15-Jun-2003"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, c := range cases {
		if got := DOB(c.in); got != c.want {
			t.Fatalf("DOB(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGender(t *testing.T) {
	cases := map[string]string{
		"M":      "MALE",
		"male":   "MALE",
		"F":      "FEMALE",
		"Female": "FEMALE",
		"other":  "OTHER",
		"":       "",
	}
	for in, want := range cases {
		if got := Gender(in); got != want {
			t.Fatalf("Gender(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResult(t *testing.T) {
	cases := map[string]string{
		"F":    "RA",
		"f":    "RA",
		"P":    "PASS",
		"PASS": "PASS",
		"RA":   "RA",
		"AB":   "AB",
	}
	for in, want := range cases {
		if got := Result(in); got != want {
			t.Fatalf("Result(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		"9.20423E+11", "ABC12345XYZ", "  mixed   Case name ",
		"*Constitution of India", "15/06/2003", "m", "p", "",
	}
	fns := map[string]func(string) string{
		"Register":    Register,
		"Name":        Name,
		"Text":        Text,
		"Gender":      Gender,
		"DOB":         DOB,
		"SubjectName": SubjectName,
		"Result":      Result,
	}
	for name, fn := range fns {
		for _, in := range inputs {
			once := fn(in)
			if twice := fn(once); twice != once {
				t.Fatalf("%s not idempotent on %q: %q -> %q", name, in, once, twice)
			}
		}
	}
}
