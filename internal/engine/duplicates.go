package engine

import "io"

// Duplicates scans src and returns the JSON Pointer of every repeated object
// key, in document order. maxReports < 0 means unlimited; otherwise the scan
// stops once maxReports paths were found.
func Duplicates(src TokenSource, maxReports int) ([]string, error) {
	type dupFrame struct {
		path  string
		keys  map[string]struct{}
		next  int    // next array index
		child string // path of the value being read
	}
	var (
		out   []string
		stack []dupFrame
	)
	// childPath returns the path for the next value in the top frame.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.keys != nil {
			return top.child
		}
		p := top.path + "/" + itoa(top.next)
		top.next++
		return p
	}
	for {
		if maxReports >= 0 && len(out) >= maxReports {
			return out, nil
		}
		tok, err := src.NextToken()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		switch tok.Kind {
		case KindBeginObject:
			stack = append(stack, dupFrame{path: childPath(), keys: map[string]struct{}{}})
		case KindBeginArray:
			stack = append(stack, dupFrame{path: childPath()})
		case KindEndObject, KindEndArray:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case KindKey:
			top := &stack[len(stack)-1]
			top.child = top.path + "/" + escape(tok.String)
			if _, dup := top.keys[tok.String]; dup {
				out = append(out, top.child)
			}
			top.keys[tok.String] = struct{}{}
		default:
			childPath()
		}
	}
}
