// Package apiconnect wires the meetsplit services to Connect. It provides a
// handler and a client constructor per service, in the shape of generated
// Connect code, and a JSON codec for the plain message structs in package api.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages with encoding/json. It replaces Connect's default
// "json" codec, which only accepts protobuf messages.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body leaves msg untouched.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}
