package cli

import (
	"fmt"
	"io"
)

// maxStdinBytes caps Markdown read from standard input.
const maxStdinBytes = 64 << 20

func readAll(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxStdinBytes {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrInvalidUsage, maxStdinBytes)
	}
	return content, nil
}
