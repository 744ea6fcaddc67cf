package parser

// Typedef is one entry of the typedef table: a name and the raw C text it
// stands for.
type Typedef struct {
	Name       string
	Definition string
}

// EnumValue is one enumerator. Value is the source expression; CalcValue is
// the evaluated integer.
type EnumValue struct {
	Name      string
	Value     string
	CalcValue int64
}

// Enum covers both plain enums and flag sets. Name is the raw metadata key,
// which carries a trailing underscore in cimgui output.
type Enum struct {
	Name   string
	Values []EnumValue
}

// StructField keeps array dimensions in Name ("Data[4]") as the metadata
// does.
type StructField struct {
	Name         string
	Type         string
	TemplateType string
}

type Struct struct {
	Name   string
	Fields []StructField
}

type FunctionParam struct {
	Name string
	Type string

	// UDTPtr marks an aggregate that is passed by address at the ABI level
	// but by value in the C++ API.
	UDTPtr bool
}

// NonUDT values. cimgui emits a variant of every function that returns an
// aggregate by value; the canonical one takes a hidden pOut parameter.
const (
	NonUDTNone      = 0
	NonUDTCanonical = 1
)

type Function struct {
	Name         string // cimguiname
	OverloadName string // ov_cimguiname, the exported symbol
	StructName   string // stname, empty for free functions

	Ret    string
	HasRet bool

	Params   []FunctionParam
	Defaults map[string]string

	Constructor bool
	Destructor  bool
	Templated   bool
	Variadic    bool
	NonUDT      int
}

// FunctionSet is every overload registered under one logical name.
type FunctionSet struct {
	Name      string
	Overloads []Function
}

// Metadata is the complete input of one translation run, in document order.
type Metadata struct {
	Typedefs  []Typedef
	Enums     []Enum
	Structs   []Struct
	Functions []FunctionSet
}
