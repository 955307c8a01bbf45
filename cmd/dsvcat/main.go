package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dsvcat",
		Short: "Inspect delimiter-separated files as typed tables",
	}

	var delimFlag string
	var noTrim bool
	rootCmd.PersistentFlags().StringVarP(&delimFlag, "delimiter", "d", "auto",
		`field delimiter: "tab", ";", "|", or "auto" to sniff`)
	rootCmd.PersistentFlags().BoolVar(&noTrim, "no-trim", false,
		"keep surrounding spaces in field values")

	readTable := func(path string) (*dsv.Table, error) {
		opts := dsv.DefaultReaderOptions()
		opts.Trim = !noTrim

		switch delimFlag {
		case "tab", "\t":
			opts.Delimiter = '\t'
		case ";":
			opts.Delimiter = ';'
		case "|":
			opts.Delimiter = '|'
		case "auto":
			d, err := sniffFile(path)
			if err != nil {
				return nil, err
			}
			opts.Delimiter = d
		default:
			return nil, fmt.Errorf("unknown delimiter %q", delimFlag)
		}

		return dsv.ReadFileWithOptions(path, opts)
	}

	schemaCmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Print column names and inferred types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}
			for i := 0; i < table.NumCols(); i++ {
				name, _ := table.Name(i)
				kind, _ := table.Kind(i)
				fmt.Printf("%s\t%s\n", name, kind)
			}
			return nil
		},
	}

	var headRows int
	headCmd := &cobra.Command{
		Use:   "head <file>",
		Short: "Print the first rows of the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}
			printHead(os.Stdout, table, headRows)
			return nil
		},
	}
	headCmd.Flags().IntVarP(&headRows, "rows", "n", 10, "number of rows to print")

	countCmd := &cobra.Command{
		Use:   "count <file>",
		Short: "Print the number of data rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := readTable(args[0])
			if err != nil {
				return err
			}
			fmt.Println(table.NumRows())
			return nil
		},
	}

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(countCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sniffFile detects the delimiter from the first few KB of the file.
// Sniffing reads the raw bytes, so compressed files need an explicit
// --delimiter.
func sniffFile(path string) (byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sample := make([]byte, 4096)
	n, err := f.Read(sample)
	if err != nil && err != io.EOF {
		return 0, err
	}
	return dsv.NewSniffer(string(sample[:n])).DetectDelimiter(), nil
}

// printHead writes up to n rows of the table in tab-aligned form.
func printHead(w io.Writer, table *dsv.Table, n int) {
	if table.NumCols() == 0 {
		return
	}
	if n > table.NumRows() {
		n = table.NumRows()
	}

	for i, name := range table.Names() {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, name)
	}
	fmt.Fprintln(w)

	for row := 0; row < n; row++ {
		for c := 0; c < table.NumCols(); c++ {
			if c > 0 {
				fmt.Fprint(w, "\t")
			}
			if ints, ok := table.Ints(c); ok {
				fmt.Fprint(w, ints[row])
			} else if strs, ok := table.Strings(c); ok {
				fmt.Fprint(w, strs[row])
			}
		}
		fmt.Fprintln(w)
	}
}
