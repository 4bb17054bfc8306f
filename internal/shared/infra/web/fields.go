package web

import (
	"encoding/json"
	"strings"
)

// SelectFields reduce data (una entidad o una lista) a las rutas pedidas tal y como
// aparecen en el JSON renderizado; "location.lat" conserva el anidamiento.
// Sin rutas devuelve data sin tocar.
func SelectFields(data interface{}, fields []string) (interface{}, error) {
	if len(fields) == 0 {
		return data, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	switch v := generic.(type) {
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				out = append(out, pick(obj, fields))
			}
		}
		return out, nil
	case map[string]interface{}:
		return pick(v, fields), nil
	default:
		return generic, nil
	}
}

func pick(obj map[string]interface{}, fields []string) map[string]interface{} {
	out := make(map[string]interface{})
	for _, field := range fields {
		path := strings.Split(field, ".")
		val, ok := lookup(obj, path)
		if !ok {
			continue
		}
		assign(out, path, val)
	}
	return out
}

func lookup(obj map[string]interface{}, path []string) (interface{}, bool) {
	var cur interface{} = obj
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func assign(obj map[string]interface{}, path []string, val interface{}) {
	for _, key := range path[:len(path)-1] {
		next, ok := obj[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			obj[key] = next
		}
		obj = next
	}
	obj[path[len(path)-1]] = val
}
