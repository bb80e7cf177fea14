package gram

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/gram-format/go-gram/coerce"
	"github.com/gram-format/go-gram/ir"
)

// Patch applies an RFC 6902 patch document to a value. The value crosses
// a JSON bridge, so duplicate object keys collapse to their first match
// and numerics come back as strings.
func Patch(v *ir.Value, patchDoc []byte) (*ir.Value, error) {
	p, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: patch: %v", ir.ErrSyntax, err)
	}
	native, err := coerce.ToNative(v)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(native)
	if err != nil {
		return nil, err
	}
	res, err := p.Apply(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(res))
	dec.UseNumber()
	var patched any
	if err := dec.Decode(&patched); err != nil {
		return nil, err
	}
	return coerce.FromNative(patched)
}
