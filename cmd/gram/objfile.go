package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/gram-format/go-gram/coerce"
	"github.com/gram-format/go-gram/debug"
	"github.com/gram-format/go-gram/encode"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/parse"
)

// readDoc loads one document argument; "-" reads stdin.
func readDoc(cfg *MainConfig, arg string) (*ir.Value, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, err := decodeDoc(cfg, d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	if debug.Parse() {
		if n, err := coerce.ToNative(v); err == nil {
			debug.LogAny(n)
		}
	}
	return v, nil
}

func decodeDoc(cfg *MainConfig, d []byte) (*ir.Value, error) {
	switch cfg.inFormat() {
	case JSONFormat:
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		var native any
		if err := dec.Decode(&native); err != nil {
			return nil, err
		}
		return coerce.FromNative(native)
	case YAMLFormat:
		var native any
		if err := yaml.UnmarshalWithOptions(d, &native, yaml.UseOrderedMap()); err != nil {
			return nil, err
		}
		return coerce.FromNative(native)
	default:
		return parse.Parse(d)
	}
}

// writeDoc renders v on w in the output format, ending with a newline.
func writeDoc(cfg *MainConfig, w io.Writer, v *ir.Value) error {
	switch cfg.outFormat() {
	case JSONFormat:
		n, err := coerce.ToNative(v)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		if cfg.Pretty {
			enc.SetIndent("", "    ")
		}
		return enc.Encode(n)
	case YAMLFormat:
		n, err := coerce.ToNative(v)
		if err != nil {
			return err
		}
		d, err := yaml.Marshal(n)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		s, err := encode.FormatValue(v, cfg.encOpts(w)...)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	}
}

// docArgs defaults to stdin when no file arguments remain.
func docArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
