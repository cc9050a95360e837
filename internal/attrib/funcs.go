package attrib

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

func extraFuncs() map[string]interface{} {
	return map[string]interface{}{
		"multiSort":      multiSort,
		"uniqueTogether": uniqueTogether,
	}
}

// groupArgs splits template arguments into attribute names and the trailing
// list, so both {{ multiSort "name" "version" .Components }} and
// {{ .Components | multiSort "name,version" }} work. A final "true"
// string or bool among the names enables case-sensitive comparison for
// uniqueTogether and reverse order for multiSort.
type groupArgs struct {
	attrs []string
	flag  bool
	list  reflect.Value
}

func parseGroupArgs(fn string, args []interface{}) (*groupArgs, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: expected attribute names and a list", fn)
	}
	list := reflect.ValueOf(args[len(args)-1])
	for list.IsValid() && (list.Kind() == reflect.Ptr || list.Kind() == reflect.Interface) {
		list = list.Elem()
	}
	if !list.IsValid() || (list.Kind() != reflect.Slice && list.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%s: last argument must be a list", fn)
	}

	g := &groupArgs{list: list}
	for _, a := range args[:len(args)-1] {
		switch v := a.(type) {
		case bool:
			g.flag = v
		case string:
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					g.attrs = append(g.attrs, name)
				}
			}
		case []string:
			g.attrs = append(g.attrs, v...)
		default:
			return nil, fmt.Errorf("%s: unsupported attribute %v", fn, a)
		}
	}
	if len(g.attrs) == 0 {
		return nil, fmt.Errorf("%s: no attribute names given", fn)
	}
	return g, nil
}

// attrValue returns the named attribute of item: a struct field or method
// matched case-insensitively, or a map entry.
func attrValue(item reflect.Value, name string) string {
	for item.IsValid() && item.Kind() == reflect.Interface {
		item = item.Elem()
	}
	if !item.IsValid() {
		return ""
	}
	if m := methodByName(item, name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return fmt.Sprint(m.Call(nil)[0].Interface())
	}
	for item.Kind() == reflect.Ptr {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}
	switch item.Kind() {
	case reflect.Struct:
		f := item.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, fieldName(name)) })
		if f.IsValid() && f.CanInterface() {
			return fmt.Sprint(f.Interface())
		}
	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			return ""
		}
		v := item.MapIndex(reflect.ValueOf(name).Convert(item.Type().Key()))
		if v.IsValid() {
			return fmt.Sprint(v.Interface())
		}
	}
	return ""
}

func methodByName(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		if strings.EqualFold(t.Method(i).Name, fieldName(name)) {
			return v.Method(i)
		}
	}
	return reflect.Value{}
}

// fieldName maps an ABOUT-style name such as "license_expression" to the
// Go field name "LicenseExpression" for case-insensitive matching.
func fieldName(name string) string {
	return strings.ReplaceAll(name, "_", "")
}

func (g *groupArgs) key(item reflect.Value, caseSensitive bool) []string {
	key := make([]string, len(g.attrs))
	for i, a := range g.attrs {
		key[i] = attrValue(item, a)
		if !caseSensitive {
			key[i] = strings.ToLower(key[i])
		}
	}
	return key
}

func (g *groupArgs) items() []reflect.Value {
	out := make([]reflect.Value, g.list.Len())
	for i := range out {
		out[i] = g.list.Index(i)
	}
	return out
}

func toSlice(values []reflect.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}

// multiSort returns the list sorted by the given attributes, ignoring case.
// A true flag sorts in descending order.
func multiSort(args ...interface{}) ([]interface{}, error) {
	g, err := parseGroupArgs("multiSort", args)
	if err != nil {
		return nil, err
	}
	items := g.items()
	keys := make([][]string, len(items))
	for i, it := range items {
		keys[i] = g.key(it, false)
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		for i := range ka {
			if ka[i] != kb[i] {
				if g.flag {
					return ka[i] > kb[i]
				}
				return ka[i] < kb[i]
			}
		}
		return false
	})
	sorted := make([]reflect.Value, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	return toSlice(sorted), nil
}

// uniqueTogether returns the list keeping the first item of each distinct
// combination of the given attributes, in input order. Comparison ignores
// case unless the flag is true.
func uniqueTogether(args ...interface{}) ([]interface{}, error) {
	g, err := parseGroupArgs("uniqueTogether", args)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []reflect.Value
	for _, it := range g.items() {
		k := strings.Join(g.key(it, g.flag), "\x00")
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return toSlice(out), nil
}
