package scan

import (
	"errors"
	"testing"
)

// field is the materialized form of a scanned token, for test comparison.
type field struct {
	kind  Kind
	value string
}

// scanOne scans a single line and materializes its tokens.
func scanOne(t *testing.T, delim byte, trim bool, line string) ([]field, int, error) {
	t.Helper()
	s, err := NewScanner(delim, trim)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	buf := []byte(line)
	row := make([]Token, 32)
	next, n, err := s.ScanLine(buf, 0, row)
	if err != nil {
		return nil, 0, err
	}
	fields := make([]field, n)
	for i := 0; i < n; i++ {
		fields[i] = field{row[i].Kind(), string(row[i].Bytes(buf))}
	}
	return fields, next, nil
}

func TestScanner_Fields(t *testing.T) {
	tests := []struct {
		name  string
		delim byte
		trim  bool
		line  string
		want  []field
	}{
		{
			name: "plain strings",
			trim: true,
			line: "abc\tdef\n",
			want: []field{{KindString, "abc"}, {KindString, "def"}},
		},
		{
			name: "integers plain signed",
			trim: true,
			line: "123\t-4\t+5\n",
			want: []field{{KindInteger, "123"}, {KindInteger, "-4"}, {KindInteger, "+5"}},
		},
		{
			name: "bare sign is a string",
			trim: true,
			line: "+\t-\n",
			want: []field{{KindString, "+"}, {KindString, "-"}},
		},
		{
			name: "sign then text is a string",
			trim: true,
			line: "-x\n",
			want: []field{{KindString, "-x"}},
		},
		{
			name: "digits then text is a string",
			trim: true,
			line: "12ab\n",
			want: []field{{KindString, "12ab"}},
		},
		{
			name: "trim skips leading and trailing spaces around integer",
			trim: true,
			line: "  42  \n",
			want: []field{{KindInteger, "42"}},
		},
		{
			name: "integer space then visible reverts to string spanning whole field",
			trim: true,
			line: "42 x\n",
			want: []field{{KindString, "42 x"}},
		},
		{
			name: "string keeps trailing spaces in token span",
			trim: true,
			line: "ab  \n",
			want: []field{{KindString, "ab  "}},
		},
		{
			name: "no trim keeps spaces and falls back to string",
			trim: false,
			line: " 42 \n",
			want: []field{{KindString, " 42 "}},
		},
		{
			name: "empty middle field",
			trim: true,
			line: "a\t\tb\n",
			want: []field{{KindString, "a"}, {KindString, ""}, {KindString, "b"}},
		},
		{
			name: "empty trailing field",
			trim: true,
			line: "a\t\n",
			want: []field{{KindString, "a"}, {KindString, ""}},
		},
		{
			name: "empty leading field",
			trim: true,
			line: "\ta\n",
			want: []field{{KindString, ""}, {KindString, "a"}},
		},
		{
			name: "blank line has no fields",
			trim: true,
			line: "\n",
			want: []field{},
		},
		{
			name:  "semicolon delimiter",
			delim: ';',
			trim:  true,
			line:  "1;two\n",
			want:  []field{{KindInteger, "1"}, {KindString, "two"}},
		},
		{
			name:  "pipe delimiter leaves semicolons as text",
			delim: '|',
			trim:  true,
			line:  "a;b|2\n",
			want:  []field{{KindString, "a;b"}, {KindInteger, "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delim := tt.delim
			if delim == 0 {
				delim = '\t'
			}
			got, next, err := scanOne(t, delim, tt.trim, tt.line)
			if err != nil {
				t.Fatalf("ScanLine(%q) error: %v", tt.line, err)
			}
			if next != len(tt.line) {
				t.Errorf("next = %d, want %d", next, len(tt.line))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name     string
		trim     bool
		line     string
		wantByte byte
		wantOff  int
	}{
		{"control byte", true, "a\x01b\n", 0x01, 1},
		{"non ascii byte", true, "caf\xc3\n", 0xc3, 3},
		{"double sign", true, "++\n", '+', 1},
		{"sign after digits", true, "4+2\n", '+', 1},
		{"digit after integer space", true, "1 2\n", '2', 2},
		{"sign after integer space", true, "1 -\n", '-', 2},
		{"control byte at line start", true, "\x7fx\n", 0x7f, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := scanOne(t, '\t', tt.trim, tt.line)
			if err == nil {
				t.Fatalf("ScanLine(%q) succeeded, want error", tt.line)
			}
			var se *Error
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if se.Byte != tt.wantByte {
				t.Errorf("Byte = 0x%02x, want 0x%02x", se.Byte, tt.wantByte)
			}
			if se.Offset != tt.wantOff {
				t.Errorf("Offset = %d, want %d", se.Offset, tt.wantOff)
			}
		})
	}
}

func TestScanner_ConsecutiveLines(t *testing.T) {
	s, err := NewScanner('\t', true)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	buf := []byte("1\ta\n2\tb\n")
	row := make([]Token, 2)

	next, n, err := s.ScanLine(buf, 0, row)
	if err != nil || n != 2 || next != 4 {
		t.Fatalf("first line: next=%d n=%d err=%v", next, n, err)
	}
	next, n, err = s.ScanLine(buf, next, row)
	if err != nil || n != 2 || next != len(buf) {
		t.Fatalf("second line: next=%d n=%d err=%v", next, n, err)
	}
	if got := string(row[1].Bytes(buf)); got != "b" {
		t.Errorf("second line field 1 = %q, want %q", got, "b")
	}
}

func TestScanner_RowOverflowCountsFields(t *testing.T) {
	s, err := NewScanner('\t', true)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	buf := []byte("a\tb\tc\n")
	row := make([]Token, 1)
	_, n, err := s.ScanLine(buf, 0, row)
	if err != nil {
		t.Fatalf("ScanLine: %v", err)
	}
	if n != 3 {
		t.Errorf("nfields = %d, want 3", n)
	}
}

func TestNewScanner_RejectsDelimiter(t *testing.T) {
	for _, delim := range []byte{',', ' ', '\n', 'a', 0} {
		if _, err := NewScanner(delim, true); !errors.Is(err, ErrDelimiter) {
			t.Errorf("NewScanner(0x%02x) error = %v, want ErrDelimiter", delim, err)
		}
	}
	for _, delim := range []byte{'\t', ';', '|'} {
		if _, err := NewScanner(delim, true); err != nil {
			t.Errorf("NewScanner(0x%02x) error = %v, want nil", delim, err)
		}
	}
}
