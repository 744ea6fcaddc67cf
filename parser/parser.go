package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a metadata document does not have the
// expected shape.
var ErrMalformed = errors.New("parser: malformed metadata")

// Documents holds the raw bytes of the three cimgui metadata files.
type Documents struct {
	Typedefs        []byte // typedefs_dict.json
	StructsAndEnums []byte // structs_and_enums.json
	Commands        []byte // definitions.json
}

// Parse decodes all documents. Object members keep their document order so
// that output follows the order of the C headers.
func Parse(docs Documents) (*Metadata, error) {
	md := &Metadata{}

	var err error
	if md.Typedefs, err = ParseTypedefs(docs.Typedefs); err != nil {
		return nil, err
	}
	if md.Enums, md.Structs, err = ParseStructsAndEnums(docs.StructsAndEnums); err != nil {
		return nil, err
	}
	if md.Functions, err = ParseCommands(docs.Commands); err != nil {
		return nil, err
	}

	return md, nil
}

func ParseTypedefs(data []byte) ([]Typedef, error) {
	var typedefs []Typedef

	err := eachMember(data, func(name string, raw json.RawMessage) error {
		var def string
		if err := json.Unmarshal(raw, &def); err != nil {
			return fmt.Errorf("typedef %s: %w", name, err)
		}
		typedefs = append(typedefs, Typedef{Name: name, Definition: def})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: typedefs: %v", ErrMalformed, err)
	}

	return typedefs, nil
}

type jsonEnumValue struct {
	Name      string          `json:"name"`
	Value     json.RawMessage `json:"value"`
	CalcValue json.Number     `json:"calc_value"`
}

type jsonField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	TemplateType string `json:"template_type"`
}

func ParseStructsAndEnums(data []byte) ([]Enum, []Struct, error) {
	var enums []Enum
	var structs []Struct

	err := eachMember(data, func(section string, raw json.RawMessage) error {
		switch section {
		case "enums":
			return eachMember(raw, func(name string, raw json.RawMessage) error {
				e, err := decodeEnum(name, raw)
				if err != nil {
					return err
				}
				enums = append(enums, e)
				return nil
			})

		case "structs":
			return eachMember(raw, func(name string, raw json.RawMessage) error {
				var fields []jsonField
				if err := json.Unmarshal(raw, &fields); err != nil {
					return fmt.Errorf("struct %s: %w", name, err)
				}
				s := Struct{Name: name}
				for _, f := range fields {
					s.Fields = append(s.Fields, StructField(f))
				}
				structs = append(structs, s)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: structs and enums: %v", ErrMalformed, err)
	}

	return enums, structs, nil
}

func decodeEnum(name string, raw json.RawMessage) (Enum, error) {
	var values []jsonEnumValue
	if err := json.Unmarshal(raw, &values); err != nil {
		return Enum{}, fmt.Errorf("enum %s: %w", name, err)
	}

	e := Enum{Name: name}
	for _, v := range values {
		value := scalarText(v.Value)

		// Without calc_value the value itself must be a plain integer.
		text := string(v.CalcValue)
		if text == "" {
			text = value
		}
		n, err := parseInt(text)
		if err != nil {
			return Enum{}, fmt.Errorf("enum %s: value %s: %w", name, v.Name, err)
		}

		e.Values = append(e.Values, EnumValue{Name: v.Name, Value: value, CalcValue: n})
	}

	return e, nil
}

// parseInt accepts integer text and integral floats, which some metadata
// generators emit for large masks.
func parseInt(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// scalarText returns a JSON string's contents or a number's literal text.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

type jsonArg struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	UDTPtr bool   `json:"udtptr"`
}

type jsonFunction struct {
	CimguiName   string          `json:"cimguiname"`
	OvCimguiName string          `json:"ov_cimguiname"`
	StName       string          `json:"stname"`
	Ret          *string         `json:"ret"`
	ArgsT        []jsonArg       `json:"argsT"`
	Defaults     json.RawMessage `json:"defaults"`
	Constructor  bool            `json:"constructor"`
	Destructor   bool            `json:"destructor"`
	Templated    bool            `json:"templated"`
	IsVarArg     json.RawMessage `json:"isvararg"`
	NonUDT       int             `json:"nonUDT"`
}

func ParseCommands(data []byte) ([]FunctionSet, error) {
	var sets []FunctionSet

	err := eachMember(data, func(name string, raw json.RawMessage) error {
		var overloads []jsonFunction
		if err := json.Unmarshal(raw, &overloads); err != nil {
			return fmt.Errorf("function %s: %w", name, err)
		}

		set := FunctionSet{Name: name}
		for _, jf := range overloads {
			fn, err := jf.function()
			if err != nil {
				return fmt.Errorf("function %s: %w", name, err)
			}
			set.Overloads = append(set.Overloads, fn)
		}
		sets = append(sets, set)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: commands: %v", ErrMalformed, err)
	}

	return sets, nil
}

func (jf jsonFunction) function() (Function, error) {
	fn := Function{
		Name:         jf.CimguiName,
		OverloadName: jf.OvCimguiName,
		StructName:   jf.StName,
		Constructor:  jf.Constructor,
		Destructor:   jf.Destructor,
		Templated:    jf.Templated,
		NonUDT:       jf.NonUDT,
	}
	if jf.Ret != nil {
		fn.Ret = *jf.Ret
		fn.HasRet = true
	}

	v := strings.TrimSpace(string(jf.IsVarArg))
	fn.Variadic = v != "" && v != "null" && v != "false"

	for _, a := range jf.ArgsT {
		fn.Params = append(fn.Params, FunctionParam(a))
		if a.Type == "..." {
			fn.Variadic = true
		}
	}

	// An empty Lua table encodes as [] rather than {}.
	d := bytes.TrimSpace(jf.Defaults)
	if len(d) > 0 && d[0] == '{' {
		if err := json.Unmarshal(d, &fn.Defaults); err != nil {
			return Function{}, fmt.Errorf("defaults: %w", err)
		}
	}

	return fn, nil
}

// eachMember calls fn for every member of the JSON object in data, in
// document order.
func eachMember(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, found %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected member name, found %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}
