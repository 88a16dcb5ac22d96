package jsoncomb

// Severity expresses how an input irregularity is treated while parsing.
type Severity int

const (
	Ignore Severity = iota
	Error
)

// ParseOpt bundles parsing options. The zero value parses without limits and
// lets the last occurrence of a repeated key win.
type ParseOpt struct {
	OnDuplicateKey Severity
	MaxDepth       int
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
