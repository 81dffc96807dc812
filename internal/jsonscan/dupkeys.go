// Package jsonscan holds token-level JSON helpers used by FeedJSON.
package jsonscan

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// DuplicateTopLevelKeys returns the keys that occur more than once in the
// top-level object of data, each reported once, in order of first repeat.
// Nested objects are walked but not checked.
func DuplicateTopLevelKeys(data []byte) ([]string, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		stack []frame
		seen  = map[string]int{}
		dups  []string
	)
	// valueDone flips the enclosing object back to expecting a key.
	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{kind: kindObject, expectingKey: true})
			case '[':
				stack = append(stack, frame{kind: kindArray})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == kindObject && stack[n-1].expectingKey {
				if n == 1 {
					seen[v]++
					if seen[v] == 2 {
						dups = append(dups, v)
					}
				}
				stack[n-1].expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
	if len(stack) > 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return dups, nil
}
