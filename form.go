package jddf

// Form identifies which of the eight keyword combinations a schema node uses.
type Form int

const (
	FormEmpty Form = iota
	FormRef
	FormType
	FormEnum
	FormElements
	FormProperties
	FormValues
	FormDiscriminator
)

func (f Form) String() string {
	switch f {
	case FormEmpty:
		return "empty"
	case FormRef:
		return "ref"
	case FormType:
		return "type"
	case FormEnum:
		return "enum"
	case FormElements:
		return "elements"
	case FormProperties:
		return "properties"
	case FormValues:
		return "values"
	case FormDiscriminator:
		return "discriminator"
	default:
		return "unknown"
	}
}

// keyword is a bit set of the keywords populated on a node.
type keyword uint16

const (
	kwDefinitions keyword = 1 << iota
	kwRef
	kwType
	kwEnum
	kwElements
	kwProperties
	kwOptionalProperties
	kwAdditionalProperties
	kwValues
	kwDiscriminator
)

var legalForms = map[keyword]Form{
	0:                                     FormEmpty,
	kwRef:                                 FormRef,
	kwType:                                FormType,
	kwEnum:                                FormEnum,
	kwElements:                            FormElements,
	kwValues:                              FormValues,
	kwDiscriminator:                       FormDiscriminator,
	kwProperties:                          FormProperties,
	kwOptionalProperties:                  FormProperties,
	kwProperties | kwOptionalProperties:   FormProperties,
	kwProperties | kwAdditionalProperties: FormProperties,
	kwOptionalProperties | kwAdditionalProperties:                FormProperties,
	kwProperties | kwOptionalProperties | kwAdditionalProperties: FormProperties,
}

func keywordsOf(s Schema) keyword {
	var k keyword
	if s.Definitions != nil {
		k |= kwDefinitions
	}
	if s.Ref != nil {
		k |= kwRef
	}
	if s.Type != nil {
		k |= kwType
	}
	if s.Enum != nil {
		k |= kwEnum
	}
	if s.Elements != nil {
		k |= kwElements
	}
	if s.Properties != nil {
		k |= kwProperties
	}
	if s.OptionalProperties != nil {
		k |= kwOptionalProperties
	}
	if s.AdditionalProperties != nil {
		k |= kwAdditionalProperties
	}
	if s.Values != nil {
		k |= kwValues
	}
	if s.Discriminator != nil {
		k |= kwDiscriminator
	}
	return k
}

// Classify reports the form of a single schema node without looking at its
// children. root permits the `definitions` keyword, which is legal only on
// the document root. It returns ErrInvalidForm when the populated keywords do
// not match exactly one form.
func Classify(s Schema, root bool) (Form, error) {
	k := keywordsOf(s)
	if root {
		k &^= kwDefinitions
	}
	f, ok := legalForms[k]
	if !ok {
		return FormEmpty, ErrInvalidForm
	}
	return f, nil
}
