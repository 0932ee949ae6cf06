package domain

// Line is one unit of input text, held only for a single echo iteration.
// Text never contains the separator that terminated it.
type Line struct {
	Text   string
	Number int // 1-based position in the input, for diagnostics only
}

// Newline selects the separator written after every echoed line.
type Newline string

const (
	NewlineLF   Newline = "lf"
	NewlineCRLF Newline = "crlf"
)

// Bytes returns the separator sequence. Unknown values fall back to LF.
func (n Newline) Bytes() string {
	if n == NewlineCRLF {
		return "\r\n"
	}
	return "\n"
}
