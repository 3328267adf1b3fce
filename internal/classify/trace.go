package classify

import (
	"fmt"
	"io"
	"strings"
)

// FormatChain renders a walked chain the way the interactive debug stream
// shows it:
//
//	==== Forward muon decay chain: mu <- 421 <- 521; isPrompt = 0
func FormatChain(chain []int, prompt bool) string {
	var b strings.Builder
	b.WriteString("==== Forward muon decay chain: mu")
	for _, code := range chain {
		fmt.Fprintf(&b, " <- %d", code)
	}
	flag := 0
	if prompt {
		flag = 1
	}
	fmt.Fprintf(&b, "; isPrompt = %d", flag)
	return b.String()
}

// WriteChain writes FormatChain's line plus a newline to w.
func WriteChain(w io.Writer, chain []int, prompt bool) error {
	_, err := io.WriteString(w, FormatChain(chain, prompt)+"\n")
	return err
}
