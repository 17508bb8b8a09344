// printer_test.go
package toki

import (
	"reflect"
	"strings"
	"testing"
)

func Test_Printer_Binary_And_Literals(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"a + b;", "(a + b);\n"},
		{`x = "hey";`, "x = \"hey\";\n"},
		{"f(a, b);", "f(a, b);\n"},
		{"f(a, b + 1, c = 2);", "f(a, b + 1, c = 2);\n"},
		{"f(a + b * c);", "f(a + b * c);\n"},
		{"f(x = 1, y);", "f(x = 1, y);\n"},
		{"p.q.r;", "p.q.r;\n"},
		{"x: mut int = 5;", "x: mut int = 5;\n"},
		{"return a - b;", "return (a - b);\n"},
		{"a == b / c;", "((a == b) / c);\n"},
		{"(a + b) * c;", "((a + b) * c);\n"},
		{"f(\n    a,\n    b,\n);", "f(a, b);\n"},
	}
	for _, tc := range cases {
		got, err := Pretty(tc.src)
		if err != nil {
			t.Fatalf("Pretty(%q): %v", tc.src, err)
		}
		if got != tc.want {
			t.Fatalf("Pretty(%q):\nwant %q\ngot  %q", tc.src, tc.want, got)
		}
	}
}

func Test_Printer_Conditional_Layout(t *testing.T) {
	src := "if a:\n    b;\nelse if c:\n    d;\nelse:\n    e;\n"
	got, err := Pretty(src)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got != src {
		t.Fatalf("conditional chain should be stable:\nwant %q\ngot  %q", src, got)
	}
}

func Test_Printer_Function_Layout(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return (a + b);\n"
	got, err := Pretty(src)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func Test_Printer_Struct_Layout(t *testing.T) {
	src := "struct Point:\n    x: int\n    y: int\n    def sum(self: Point) -> int:\n        return (self.x + self.y);\n"
	got, err := Pretty(src)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

// The terminating semicolon of a conditional-valued assignment sits on
// its own line at statement depth, with no blank line before it.
func Test_Printer_Conditional_Valued_Assignment(t *testing.T) {
	src := "x = if c:\n    1\nelse:\n    2\n;\n"
	got, err := Pretty(src)
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func Test_Printer_Pretty_Propagates_Errors(t *testing.T) {
	if _, err := Pretty("x = @;"); err == nil {
		t.Fatal("want error for unknown token")
	}
}

// Rendering an accepted program and parsing the result again yields a
// structurally equal tree, and a second render is byte-identical.
func Test_Printer_Round_Trip(t *testing.T) {
	corpus := []string{
		"a + b",
		"a + b + c;",
		"x = y * (z + 1);",
		`greet = "hello";`,
		"x: mut int = 5;\ny: Point = q;",
		"f(a, b + 1, c = 2);",
		"f(\n    a,\n    b,\n);",
		"p.dist(q).val + 1;",
		"if x == 90:\n    y\n",
		"if a:\n    b;\nelse if c:\n    d;\nelse:\n    e\n",
		"if x:\n    y;\n    z\n",
		"x = if c:\n    1\nelse:\n    2\n;\n",
		"return f(x) + 1;",
		"def add(a: int, b: int) -> int:\n    return a + b;\n",
		"def noop() -> bool:\n    return ok;\n",
		"struct Point:\n    x: int\n    y: int\n\n    def sum(self: Point) -> int:\n        return self.x + self.y;\n",
	}

	for _, src := range corpus {
		first, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		rendered := Render(first)
		second, err := Parse(rendered)
		if err != nil {
			t.Fatalf("re-parse of %q (rendered from %q): %v", rendered, src, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("round trip changed the tree for %q:\nrendered %q\nfirst  %#v\nsecond %#v",
				src, rendered, first, second)
		}
		if again := Render(second); again != rendered {
			t.Fatalf("render not stable for %q:\n%q\nvs\n%q", src, rendered, again)
		}
	}
}

func Test_Printer_Indents_Are_Four_Spaces(t *testing.T) {
	got, err := Pretty("def f() -> int:\n    if x:\n        return y;\n")
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(got, "\n        return y;\n") {
		t.Fatalf("nested statement should sit at 8 spaces:\n%q", got)
	}
}
