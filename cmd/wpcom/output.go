package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type formatFunc func(w io.Writer, v any) error

func formatter(name string) (formatFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return func(w io.Writer, v any) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(v)
		}, nil
	case "yaml", "yml":
		return func(w io.Writer, v any) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want json or yaml)", name)
	}
}

func render(w io.Writer, format string, v any) error {
	f, err := formatter(format)
	if err != nil {
		return err
	}
	return f(w, v)
}
