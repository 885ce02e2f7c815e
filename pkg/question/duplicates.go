package question

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// keyFrame tracks one open JSON container during the duplicate-key walk.
type keyFrame struct {
	object       bool
	path         string
	keys         map[string]struct{}
	key          string
	index        int
	expectingKey bool
}

// checkDuplicateKeys walks the token stream and rejects any object that
// repeats a key. Decoding into maps or structs would keep the last value
// silently. Syntax errors are left to the decoding pass.
func checkDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []*keyFrame
	top := func() *keyFrame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	// nextPath returns the location of the value about to be read.
	nextPath := func() string {
		parent := top()
		switch {
		case parent == nil:
			return ""
		case parent.object:
			if parent.path == "" {
				return parent.key
			}
			return parent.path + "." + parent.key
		default:
			path := parent.path + "[" + strconv.Itoa(parent.index) + "]"
			parent.index++
			return path
		}
	}
	valueDone := func() {
		if parent := top(); parent != nil && parent.object {
			parent.expectingKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return nil
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &keyFrame{object: true, path: nextPath(), keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &keyFrame{path: nextPath()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if frame := top(); frame != nil && frame.object && frame.expectingKey {
				if _, dup := frame.keys[v]; dup {
					return &DecodeError{Path: frame.path, Err: fmt.Errorf("duplicate key %q", v)}
				}
				frame.keys[v] = struct{}{}
				frame.key = v
				frame.expectingKey = false
				continue
			}
			nextPath()
			valueDone()
		default:
			nextPath()
			valueDone()
		}
	}
}
