package stdlib

import (
	"fmt"
	"io"

	"github.com/agenthands/snailz/pkg/core/value"
)

const (
	SnailBanner = "SNAILZ"
	SnailCount  = 1000
)

// Print writes the textual form of v followed by a newline.
func Print(w io.Writer, v value.Value) error {
	_, err := fmt.Fprintln(w, v.String())
	return err
}

// Snail writes the banner SnailCount times.
func Snail(w io.Writer) error {
	for snail := SnailCount; snail > 0; snail-- {
		if _, err := fmt.Fprintln(w, SnailBanner); err != nil {
			return err
		}
	}
	return nil
}
