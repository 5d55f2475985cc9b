package imagen

import (
	"encoding/json"
	"sort"
)

// Shape tags which known response layout an image reply matched.
type Shape int

const (
	// ShapeUnrecognized: valid 2xx reply with no known image field.
	ShapeUnrecognized Shape = iota
	// ShapeGeneratedImages: {"generatedImages":[{"base64EncodedString":...}]}
	ShapeGeneratedImages
	// ShapeImages: {"images":[{"base64EncodedString":...}]}
	ShapeImages
	// ShapeCandidates: {"candidates":[{"image":{"base64":...}}]}
	ShapeCandidates
	// ShapePredictions: {"predictions":[{"bytesBase64Encoded":...,"mimeType":...}]}
	ShapePredictions
	// ShapeHTTPError: the provider answered with a non-2xx status.
	ShapeHTTPError
)

func (s Shape) String() string {
	switch s {
	case ShapeGeneratedImages:
		return "generatedImages"
	case ShapeImages:
		return "images"
	case ShapeCandidates:
		return "candidates"
	case ShapePredictions:
		return "predictions"
	case ShapeHTTPError:
		return "http_error"
	}
	return "unrecognized"
}

// Result is a classified provider reply. Base64 is set only for the
// image-bearing shapes; Raw only for ShapeHTTPError.
type Result struct {
	Shape    Shape
	Base64   string
	MIMEType string
	Status   int
	Raw      string
	Keys     []string
}

// HasImage reports whether r carries an image payload.
func (r *Result) HasImage() bool { return r.Base64 != "" }

type b64Entry struct {
	Base64EncodedString string `json:"base64EncodedString"`
	MIMEType            string `json:"mimeType"`
}

type envelope struct {
	GeneratedImages []b64Entry `json:"generatedImages"`
	Images          []b64Entry `json:"images"`
	Candidates      []struct {
		Image struct {
			Base64   string `json:"base64"`
			MIMEType string `json:"mimeType"`
		} `json:"image"`
	} `json:"candidates"`
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MIMEType           string `json:"mimeType"`
	} `json:"predictions"`
}

// Decode classifies a 2xx response body. Shapes are tried in a fixed order
// and the first non-empty payload wins. Bodies that are not JSON objects,
// or that match nothing, are ShapeUnrecognized.
func Decode(body []byte) Result {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return Result{Shape: ShapeUnrecognized}
	}
	res := Result{Shape: ShapeUnrecognized, Keys: make([]string, 0, len(keys))}
	for k := range keys {
		res.Keys = append(res.Keys, k)
	}
	sort.Strings(res.Keys)

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// A known key with an unexpected type; treat as unrecognized.
		return res
	}

	switch {
	case len(env.GeneratedImages) > 0 && env.GeneratedImages[0].Base64EncodedString != "":
		res.Shape = ShapeGeneratedImages
		res.Base64 = env.GeneratedImages[0].Base64EncodedString
		res.MIMEType = env.GeneratedImages[0].MIMEType
	case len(env.Images) > 0 && env.Images[0].Base64EncodedString != "":
		res.Shape = ShapeImages
		res.Base64 = env.Images[0].Base64EncodedString
		res.MIMEType = env.Images[0].MIMEType
	case len(env.Candidates) > 0 && env.Candidates[0].Image.Base64 != "":
		res.Shape = ShapeCandidates
		res.Base64 = env.Candidates[0].Image.Base64
		res.MIMEType = env.Candidates[0].Image.MIMEType
	case len(env.Predictions) > 0 && env.Predictions[0].BytesBase64Encoded != "":
		res.Shape = ShapePredictions
		res.Base64 = env.Predictions[0].BytesBase64Encoded
		res.MIMEType = env.Predictions[0].MIMEType
	}
	return res
}
