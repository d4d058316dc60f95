package exercises

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/dalemusser/strataexercise/internal/app/system/apperr"
	"github.com/dalemusser/strataexercise/internal/app/system/jsonutil"
)

// fields holds the request body as flat string values, whichever
// encoding the client used.
type fields map[string]string

func (f fields) get(name string) string {
	return f[name]
}

// readFields reads a form-encoded or JSON object body. JSON numbers keep
// their literal text so "30" and 30 validate the same way.
func readFields(w http.ResponseWriter, r *http.Request) (fields, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var body map[string]any
		err := jsonutil.Decode(w, r, &body)
		if err == jsonutil.ErrEmptyBody {
			return fields{}, nil
		}
		if err != nil {
			return nil, apperr.Input("body", "Invalid JSON body")
		}
		out := make(fields, len(body))
		for k, v := range body {
			switch t := v.(type) {
			case nil:
				out[k] = ""
			case string:
				out[k] = t
			case json.Number:
				out[k] = t.String()
			default:
				out[k] = fmt.Sprint(t)
			}
		}
		return out, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, jsonutil.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, apperr.Input("body", "Invalid form body")
	}
	out := make(fields, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out, nil
}
