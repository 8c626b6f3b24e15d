package jadzia

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// unitlessProps lists properties whose bare numbers take no unit.
var unitlessProps = []string{
	"animationIterationCount",
	"borderImageOutset",
	"borderImageSlice",
	"borderImageWidth",
	"boxFlex",
	"boxFlexGroup",
	"boxOrdinalGroup",
	"columnCount",
	"fillOpacity",
	"flex",
	"flexGrow",
	"flexNegative",
	"flexOrder",
	"flexPositive",
	"flexShrink",
	"floodOpacity",
	"fontWeight",
	"gridColumn",
	"gridRow",
	"lineClamp",
	"lineHeight",
	"opacity",
	"order",
	"orphans",
	"stopOpacity",
	"strokeDasharray",
	"strokeDashoffset",
	"strokeMiterlimit",
	"strokeOpacity",
	"strokeWidth",
	"tabSize",
	"widows",
	"zIndex",
	"zoom",
}

var vendorPrefixes = []string{"webkit", "moz", "ms", "o"}

var unitlessSet = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{}, len(unitlessProps)*(len(vendorPrefixes)+1))
	for _, p := range unitlessProps {
		name := kebabCase(p)
		set[name] = struct{}{}
		for _, v := range vendorPrefixes {
			set["-"+v+"-"+name] = struct{}{}
		}
	}
	return set
})

// IsUnitless reports whether the CSS property name takes bare numbers.
func IsUnitless(name string) bool {
	_, ok := unitlessSet()[name]
	return ok
}

// kebabCase converts camelCase and snake_case names to lower kebab case.
// "backgroundColor" -> "background-color", "__custom" -> "--custom".
func kebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
		case r == '_':
			b.WriteByte('-')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// PropName converts a rule tree property name to its CSS form. Names that
// already start with "-" are kept as written.
func PropName(key string, opts Options) string {
	if strings.HasPrefix(key, "-") {
		return key
	}
	name := kebabCase(key)
	if opts.isCustom(name) {
		name = "--" + name
	}
	return name
}

// emptyString is how an empty string value is written in CSS.
const emptyString = "''"

// PropValue converts a leaf value of the property name (already converted)
// to CSS text.
func PropValue(v Node, name string, opts Options) (string, error) {
	var s string
	switch x := v.(type) {
	case Bool:
		s = strconv.FormatBool(bool(x))
	case Number:
		s = formatNumber(float64(x))
		if x != 0 && !IsUnitless(name) {
			s += opts.Unit
		}
	case String:
		s = string(x)
	case List:
		parts := make([]string, len(x))
		for i, e := range x {
			if !Classify(e).IsScalar() {
				return "", fmt.Errorf("%w: %s in property value", ErrUnsupportedValue, Classify(e))
			}
			p, err := PropValue(e, name, opts)
			if err != nil {
				return "", err
			}
			parts[i] = p
		}
		s = strings.TrimSpace(strings.Join(parts, " "))
	default:
		return "", fmt.Errorf("%w: %s as property value", ErrUnsupportedValue, Classify(v))
	}
	if s == "" {
		return emptyString, nil
	}
	return s, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
