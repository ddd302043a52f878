package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/sivaosorg/filelog"
)

// Decode builds a filelog.Config from an option map such as
// {"prefix": "error_", "flushFrequency": 1}. Missing keys keep their defaults.
// A false value disables filename, logFormat and flushFrequency; numbers and
// booleans given as strings are converted.
func Decode(options map[string]interface{}) (filelog.Config, error) {
	conf := filelog.DefaultConfig()
	if err := decodeInto(options, &conf); err != nil {
		return filelog.Config{}, err
	}
	return conf, nil
}

func decodeInto(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       falsyStringHook,
		WeaklyTypedInput: true,
		Result:           out,
		ErrorUnused:      false,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// falsyStringHook maps a boolean false onto the empty string so that
// {"filename": false} means "no filename" rather than "0".
func falsyStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		if b, ok := data.(bool); ok && !b {
			return "", nil
		}
	}
	return data, nil
}
