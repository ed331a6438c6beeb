package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

const indent = "  "

type jsonFrame struct {
	object   bool
	count    int
	afterKey bool
}

// indentJson re-renders a JSON document with two space indentation. Key order
// and number literals are kept as they are, \uXXXX escapes are written out as
// the characters they stand for.
func indentJson(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out bytes.Buffer
	var stack []jsonFrame
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return nil, err
		}

		if delim, ok := tok.(json.Delim); ok && (delim == '}' || delim == ']') {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.count > 0 {
				writeNewline(&out, len(stack))
			}
			out.WriteByte(byte(delim))
			continue
		}

		isKey := false
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.afterKey {
				top.afterKey = false
			} else {
				if top.count > 0 {
					out.WriteByte(',')
				}
				writeNewline(&out, len(stack))
				top.count++
				isKey = top.object
			}
		}

		err = writeToken(&out, tok)
		if err != nil {
			return nil, err
		}
		if isKey {
			out.WriteString(": ")
			stack[len(stack)-1].afterKey = true
			continue
		}
		if delim, ok := tok.(json.Delim); ok {
			stack = append(stack, jsonFrame{object: delim == '{'})
		}
	}
	return out.Bytes(), nil
}

func writeNewline(out *bytes.Buffer, depth int) {
	out.WriteByte('\n')
	out.WriteString(strings.Repeat(indent, depth))
}

func writeToken(out *bytes.Buffer, tok json.Token) error {
	switch v := tok.(type) {
	case json.Delim:
		out.WriteByte(byte(v))
	case json.Number:
		out.WriteString(v.String())
	case bool:
		if v {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case nil:
		out.WriteString("null")
	case string:
		var encoded bytes.Buffer
		enc := json.NewEncoder(&encoded)
		enc.SetEscapeHTML(false)
		err := enc.Encode(v)
		if err != nil {
			return err
		}
		out.Write(bytes.TrimSuffix(encoded.Bytes(), []byte("\n")))
	}
	return nil
}
