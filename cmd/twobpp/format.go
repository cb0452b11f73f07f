package main

import (
	"fmt"
	"io"
	"strings"
)

type formatFunc func(io.Writer, []byte) error

var formats = map[string]formatFunc{
	"hex": writeHex,
	"c":   writeC,
	"raw": writeRaw,
}

func hexBytes(b []byte) string {
	s := make([]string, len(b))
	for i, v := range b {
		s[i] = fmt.Sprintf("0x%02x", v)
	}
	return strings.Join(s, ", ")
}

func writeHex(w io.Writer, b []byte) error {
	_, err := fmt.Fprintln(w, hexBytes(b))
	return err
}

func writeC(w io.Writer, b []byte) error {
	_, err := fmt.Fprintf(w, "{ %s }\n", hexBytes(b))
	return err
}

func writeRaw(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
