// Package mif reads and writes the Quartus-style memory initialization
// files used as simulation vectors: a small header (WIDTH, DEPTH, radix
// declarations) followed by a CONTENT BEGIN / END; block of
// "address : binary-word;" lines, one word per cycle.
package mif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// File is one decoded vector stream: Words[i] is the word for cycle i.
type File struct {
	Width int
	Depth int
	Words []uint32
}

// New creates an empty file of the given word width.
func New(width int) *File {
	return &File{Width: width}
}

// Append adds one word, masked to the file's width.
func (f *File) Append(word uint32) {
	if f.Width < 32 {
		word &= 1<<uint(f.Width) - 1
	}
	f.Words = append(f.Words, word)
	f.Depth = len(f.Words)
}

// ReadFile loads and parses a vector file from disk.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open vector file")
	}
	defer fh.Close()

	f, err := Read(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return f, nil
}

// Read parses a vector stream. Blank lines and "--" comments are skipped.
// Only the DEC address radix and BIN data radix produced by the vector
// generator are accepted.
func Read(r io.Reader) (*File, error) {
	f := &File{Width: -1, Depth: -1}
	inContent := false
	sawEnd := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "--"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		if !inContent {
			switch {
			case strings.HasPrefix(line, "WIDTH="):
				v, err := headerValue(line, "WIDTH=")
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				f.Width = v
			case strings.HasPrefix(line, "DEPTH="):
				v, err := headerValue(line, "DEPTH=")
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				f.Depth = v
			case line == "ADDRESS_RADIX=DEC;", line == "DATA_RADIX=BIN;":
				// accepted as-is
			case strings.HasPrefix(line, "ADDRESS_RADIX="), strings.HasPrefix(line, "DATA_RADIX="):
				return nil, errors.Errorf("line %d: unsupported radix %q", lineNo, line)
			case line == "CONTENT BEGIN":
				inContent = true
			default:
				return nil, errors.Errorf("line %d: unexpected header %q", lineNo, line)
			}
			continue
		}

		if line == "END;" {
			sawEnd = true
			break
		}

		addr, word, err := parseEntry(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if addr != len(f.Words) {
			return nil, errors.Errorf("line %d: address %d out of order, want %d", lineNo, addr, len(f.Words))
		}
		f.Words = append(f.Words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read vector stream")
	}

	if !sawEnd {
		return nil, errors.New("missing END; terminator")
	}
	if f.Width <= 0 || f.Width > 32 {
		return nil, errors.Errorf("invalid WIDTH %d", f.Width)
	}
	if f.Depth != len(f.Words) {
		return nil, errors.Errorf("DEPTH=%d but %d words present", f.Depth, len(f.Words))
	}
	return f, nil
}

func headerValue(line, prefix string) (int, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(line, prefix), ";")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "bad %s value", strings.TrimSuffix(prefix, "="))
	}
	return v, nil
}

func parseEntry(line string) (addr int, word uint32, err error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("malformed entry %q", line)
	}
	addr, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad address")
	}
	bits := strings.TrimSuffix(strings.TrimSpace(parts[1]), ";")
	w, err := strconv.ParseUint(bits, 2, 32)
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad binary word")
	}
	return addr, uint32(w), nil
}

// WriteFile writes the vector file to disk in the generator's exact layout.
func (f *File) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create vector file")
	}
	defer fh.Close()

	if err := f.Write(fh); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// Write emits the stream in the canonical format: word values are printed
// as fixed-width binary with decimal addresses.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "WIDTH=%d;\n", f.Width)
	fmt.Fprintf(bw, "DEPTH=%d;\n\n", len(f.Words))
	fmt.Fprintf(bw, "ADDRESS_RADIX=DEC;\n")
	fmt.Fprintf(bw, "DATA_RADIX=BIN;\n\n")
	fmt.Fprintf(bw, "CONTENT BEGIN\n")
	for addr, word := range f.Words {
		fmt.Fprintf(bw, "%d : %0*b;\n", addr, f.Width, word)
	}
	fmt.Fprintf(bw, "END;\n")
	return bw.Flush()
}
