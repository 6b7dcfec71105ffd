// Package codec encodes snapshots for the Redis sync bus.
package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/KirkDiggler/queuebot/internal/models"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Deterministic encoding so an unchanged state always produces the same bytes
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Unknown fields are ignored.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeSnapshot encodes a snapshot for the wire
func EncodeSnapshot(snapshot *models.Snapshot) ([]byte, error) {
	return Marshal(snapshot)
}

// DecodeSnapshot decodes a snapshot from the wire
func DecodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
