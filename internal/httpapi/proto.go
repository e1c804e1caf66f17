package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxRequestBody caps request bodies in either encoding.  The largest
// request (a resident) is well under 1 KiB.
const maxRequestBody = 16 << 10

const (
	contentTypeJSON  = "application/json"
	contentTypeProto = "application/x-protobuf"
)

var errBodyTooLarge = errors.New("request body too large")

// isProtobuf reports whether the request body is a serialized
// google.protobuf.Struct rather than JSON.
func isProtobuf(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == contentTypeProto || mt == "application/protobuf"
}

// wantsProtobuf reports whether the client asked for protobuf responses.
func wantsProtobuf(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, _ := mime.ParseMediaType(strings.TrimSpace(part))
		if mt == contentTypeProto || mt == "application/protobuf" {
			return true
		}
	}
	return false
}

// decodeBody fills dst from the request body.  Protobuf bodies are a
// Struct whose fields mirror the JSON body, so both paths end in the same
// strict JSON decode.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return err
	}
	if len(body) > maxRequestBody {
		return errBodyTooLarge
	}

	if isProtobuf(r) {
		var st structpb.Struct
		if err := proto.Unmarshal(body, &st); err != nil {
			return fmt.Errorf("decode protobuf body: %w", err)
		}
		if body, err = protojson.Marshal(&st); err != nil {
			return err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// writeResponse encodes v as JSON, or as a google.protobuf.Struct when the
// client's Accept header asks for protobuf.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	if r != nil && wantsProtobuf(r) {
		writeProto(w, status, v)
		return
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProto(w http.ResponseWriter, status int, v any) {
	data, err := toStruct(v)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeProto)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// toStruct converts a JSON-serializable response into wire-format
// google.protobuf.Struct bytes.
func toStruct(v any) ([]byte, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var st structpb.Struct
	if err := protojson.Unmarshal(js, &st); err != nil {
		return nil, err
	}
	return proto.Marshal(&st)
}
