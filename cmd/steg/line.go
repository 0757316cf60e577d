package main

import (
	"errors"
	"io"
)

// readLine reads up to and including the first '\n' or '\r'. The terminator
// is part of the message. End of input ends the line early; an empty input
// gives an empty message.
func readLine(r io.ByteReader) ([]byte, error) {
	line := []byte{}
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return line, nil
			}
			return nil, err
		}
		line = append(line, b)
		if b == '\n' || b == '\r' {
			return line, nil
		}
	}
}
