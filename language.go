package poproject

import (
	"fmt"
)

// Language is one entry of the configured language list. YAML accepts a bare
// code ("de"), a [code, name] pair (["de", "German"], the shape Django's
// LANGUAGES setting uses) or a mapping ({code: de, name: German}).
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// UnmarshalYAML accepts the three shapes described on Language.
func (l *Language) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*l = Language{Code: t}
		return nil
	case []interface{}:
		if len(t) == 0 || len(t) > 2 {
			return fmt.Errorf("language pair must have one or two items, got %d", len(t))
		}
		code, ok := t[0].(string)
		if !ok {
			return fmt.Errorf("language code must be a string, got %T", t[0])
		}
		lang := Language{Code: code}
		if len(t) == 2 {
			name, ok := t[1].(string)
			if !ok {
				return fmt.Errorf("language name must be a string, got %T", t[1])
			}
			lang.Name = name
		}
		*l = lang
		return nil
	case map[interface{}]interface{}:
		type plain Language
		var p plain
		if err := unmarshal(&p); err != nil {
			return err
		}
		*l = Language(p)
		return nil
	default:
		return fmt.Errorf("language must be a code, a [code, name] pair or a mapping, got %T", v)
	}
}
