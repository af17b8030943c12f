package colosseumv1

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype of the messages exchanged over the
// colosseum gRPC services, ie. application/grpc+json.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

// CallOption makes a client call use the colosseum codec.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
