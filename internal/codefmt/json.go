package codefmt

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

type jsonMember struct {
	key   string
	value any
}

// jsonObject keeps members in output order.
type jsonObject []jsonMember

// formatJSON decodes code and prints it again with two space indentation.
// Decoding normalizes the value the way a JavaScript engine would: string
// escapes are resolved, numbers are printed in their shortest form, a
// repeated key keeps its first position and its last value, and array index
// keys such as "2" move to the front in ascending order.
func formatJSON(code string) string {
	dec := json.NewDecoder(strings.NewReader(code))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return code
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return code
	}
	var b strings.Builder
	writeJSON(&b, v, 0)
	return b.String()
}

func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		obj := jsonObject{}
		index := map[string]int{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			if i, ok := index[key]; ok {
				obj[i].value = v
				continue
			}
			index[key] = len(obj)
			obj = append(obj, jsonMember{key: key, value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return sortIndexKeys(obj), nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", d)
}

// sortIndexKeys moves array index keys ahead of the other keys, ascending.
func sortIndexKeys(obj jsonObject) jsonObject {
	var indexed, named jsonObject
	for _, m := range obj {
		if _, ok := arrayIndex(m.key); ok {
			indexed = append(indexed, m)
		} else {
			named = append(named, m)
		}
	}
	if len(indexed) == 0 {
		return obj
	}
	slices.SortFunc(indexed, func(a, b jsonMember) int {
		x, _ := arrayIndex(a.key)
		y, _ := arrayIndex(b.key)
		return cmp.Compare(x, y)
	})
	return append(indexed, named...)
}

func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

func writeJSON(b *strings.Builder, v any, depth int) {
	switch v := v.(type) {
	case jsonObject:
		if len(v) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, m := range v {
			if i > 0 {
				b.WriteString(",\n")
			}
			b.WriteString(strings.Repeat("  ", depth+1))
			writeJSONString(b, m.key)
			b.WriteString(": ")
			writeJSON(b, m.value, depth+1)
		}
		b.WriteString("\n" + strings.Repeat("  ", depth) + "}")
	case []any:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, e := range v {
			if i > 0 {
				b.WriteString(",\n")
			}
			b.WriteString(strings.Repeat("  ", depth+1))
			writeJSON(b, e, depth+1)
		}
		b.WriteString("\n" + strings.Repeat("  ", depth) + "]")
	case string:
		writeJSONString(b, v)
	case json.Number:
		b.WriteString(jsNumber(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	default:
		b.WriteString("null")
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// jsNumber prints n as a double in shortest form. Exponent notation is used
// below 1e-6 and from 1e21 up; values out of range print as null.
func jsNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
