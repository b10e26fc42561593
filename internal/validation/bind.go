package validation

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
)

var errNotStructPointer = errors.New("bind target must be a pointer to a struct")

// Bind copies posted form values into the string fields of dst that carry a
// form tag. Surrounding whitespace is trimmed unless the tag carries the raw
// option, as password fields do.
func Bind(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errNotStructPointer
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, opts, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		value := r.PostForm.Get(name)
		if opts != "raw" {
			value = strings.TrimSpace(value)
		}
		rv.Field(i).SetString(value)
	}
	return nil
}
