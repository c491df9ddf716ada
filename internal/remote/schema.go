package remote

import (
	"bytes"
	"context"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
)

// CompileSchema compiles a JSON Schema document registered under url.
func CompileSchema(url string, data []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "parsing recipe schema")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "registering recipe schema")
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "compiling recipe schema")
	}
	return schema, nil
}

// FetchSchema downloads and compiles the recipe schema.
func (f *Fetcher) FetchSchema(ctx context.Context, url string) (*jsonschema.Schema, error) {
	data, err := f.get(ctx, url, "recipe schema")
	if err != nil {
		return nil, err
	}

	schema, err := CompileSchema(url, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return schema, nil
}
