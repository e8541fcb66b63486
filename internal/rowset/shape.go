package rowset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"carbonfront/internal/domain"
)

// Response is the closed set of response shapes the normalizer recognizes.
// Classify picks exactly one variant; Normalize switches over all of them.
type Response interface {
	shape() string
}

// EnvelopeResponse is an object whose data.result is present and truthy.
type EnvelopeResponse struct{ Root gjson.Result }

// EncodedResponse is a JSON string whose content is itself JSON.
type EncodedResponse struct{ Text string }

// ArrayResponse is a bare JSON array.
type ArrayResponse struct{ Items gjson.Result }

// ObjectResponse is any other JSON object.
type ObjectResponse struct{ Object gjson.Result }

// UnrecognizedResponse covers numbers, booleans and null.
type UnrecognizedResponse struct{ Type gjson.Type }

func (EnvelopeResponse) shape() string     { return "envelope" }
func (EncodedResponse) shape() string      { return "encoded" }
func (ArrayResponse) shape() string        { return "array" }
func (ObjectResponse) shape() string       { return "object" }
func (UnrecognizedResponse) shape() string { return "unrecognized" }

// ShapeName returns a short label for logs and metrics.
func ShapeName(r Response) string {
	if r == nil {
		return "none"
	}
	return r.shape()
}

// Classify inspects a raw response body and returns its shape variant.
func Classify(body []byte) (Response, error) {
	body = bytes.TrimSpace(body)
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding response body: %w", domain.ErrInvalidResponseFormat)
	}
	root := gjson.ParseBytes(body)

	switch {
	case root.IsObject() && truthy(root.Get("data.result")):
		return EnvelopeResponse{Root: root}, nil
	case root.Type == gjson.String:
		return EncodedResponse{Text: root.Str}, nil
	case root.IsArray():
		return ArrayResponse{Items: root}, nil
	case root.IsObject():
		return ObjectResponse{Object: root}, nil
	default:
		return UnrecognizedResponse{Type: root.Type}, nil
	}
}

// truthy mirrors the loose truthiness the processing API relies on: missing,
// null, false, zero and "" are all treated as absent.
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}

// valueOf converts a gjson value into a Row value.
func valueOf(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.Str
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(r.Raw)); err != nil {
			return json.RawMessage(r.Raw)
		}
		return json.RawMessage(buf.Bytes())
	}
}

// rowFromObject copies an object's members into a Row in document order.
// Non-object values yield an empty row.
func rowFromObject(obj gjson.Result) Row {
	if !obj.IsObject() {
		return NewRow(0)
	}
	row := NewRow(8)
	obj.ForEach(func(key, value gjson.Result) bool {
		row.Set(key.String(), valueOf(value))
		return true
	})
	return row
}

func rowsFromArray(arr gjson.Result) RowSet {
	items := arr.Array()
	rows := make(RowSet, 0, len(items))
	for _, item := range items {
		rows = append(rows, rowFromObject(item))
	}
	return rows
}
