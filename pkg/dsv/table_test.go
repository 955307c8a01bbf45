package dsv_test

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-dsv/pkg/dsv"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind dsv.Kind
		want string
	}{
		{dsv.KindString, "string"},
		{dsv.KindInt, "int"},
		{dsv.Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTable_Accessors(t *testing.T) {
	table := mustRead(t, "id\tname\n7\tseven\n8\teight\n")

	if name, ok := table.Name(1); !ok || name != "name" {
		t.Errorf("Name(1) = %q, %v", name, ok)
	}
	if _, ok := table.Name(2); ok {
		t.Error("Name(2) ok = true, want false")
	}
	if _, ok := table.Name(-1); ok {
		t.Error("Name(-1) ok = true, want false")
	}

	if kind, ok := table.Kind(0); !ok || kind != dsv.KindInt {
		t.Errorf("Kind(0) = %v, %v", kind, ok)
	}
	if _, ok := table.Kind(5); ok {
		t.Error("Kind(5) ok = true, want false")
	}

	// Kind mismatch: integer accessor on a string column and vice versa.
	if _, ok := table.Ints(1); ok {
		t.Error("Ints(1) ok = true on string column")
	}
	if _, ok := table.Strings(0); ok {
		t.Error("Strings(0) ok = true on integer column")
	}
}

func TestTable_Equal(t *testing.T) {
	base := "x\ty\n1\ta\n2\tb\n"

	tests := []struct {
		name  string
		other string
		want  bool
	}{
		{"identical", "x\ty\n1\ta\n2\tb\n", true},
		{"different value", "x\ty\n1\ta\n2\tc\n", false},
		{"different int", "x\ty\n1\ta\n3\tb\n", false},
		{"different name", "x\tz\n1\ta\n2\tb\n", false},
		{"different rows", "x\ty\n1\ta\n", false},
		{"different kind", "x\ty\nq\ta\n2\tb\n", false},
	}

	left := mustRead(t, base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right := mustRead(t, tt.other)
			if got := left.Equal(right); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_NamesOrder(t *testing.T) {
	table := mustRead(t, "c\ta\tb\n1\t2\t3\n")
	want := []string{"c", "a", "b"}
	got := table.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
