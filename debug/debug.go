// Package debug holds process-wide debug switches read from the
// environment at startup.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Wire    bool
	Coerce  bool
	Compare bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("GRAM_DEBUG_PARSE")
	d.Wire = boolEnv("GRAM_DEBUG_WIRE")
	d.Coerce = boolEnv("GRAM_DEBUG_COERCE")
	d.Compare = boolEnv("GRAM_DEBUG_COMPARE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Wire() bool {
	return d.Wire
}
func Coerce() bool {
	return d.Coerce
}
func Compare() bool {
	return d.Compare
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
