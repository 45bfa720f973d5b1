package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// defaultKeySerializer implements KeySerializer for the argument kinds the
// inventory service passes: ids, strings, and optional (pointer) strings.
// Nil pointers serialize to "nil", which is deliberately distinct from the
// empty string: an absent search argument and a blank one are semantically
// the same query but remain separate cache entries.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from the namespace and args.
// A namespace with no args is its own key.
func (s *defaultKeySerializer) SerializeKey(namespace string, args ...any) string {
	if len(args) == 0 {
		return namespace
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)

	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}

	return strings.Join(parts, KeySeparator)
}

// NamespacePrefix returns the prefix shared by every key in the namespace.
// The trailing separator matters: without it, evicting "books" would also
// sweep "booksAll" and "booksSearch".
func (s *defaultKeySerializer) NamespacePrefix(namespace string) string {
	return namespace + KeySeparator
}

// serializeValue handles individual argument serialization based on kind.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return fmt.Sprintf("%v", v)

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = s.serializeValue(rv.Index(i).Interface())
		}
		return fmt.Sprintf("slice[%d]:{%s}", rv.Len(), strings.Join(parts, ","))

	default:
		return s.jsonFallback(v)
	}
}

// jsonFallback provides JSON serialization for composite types.
// Stability wins over fidelity: when marshaling fails we fall back to the
// type name rather than panicking, so cache operations keep working.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
