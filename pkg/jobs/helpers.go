package jobs

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

func hashKey(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// reshape converts a decoded JSON payload into a typed value.
func reshape(payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// canonicalJSON encodes payload with sorted object keys so equal payloads hash equally.
func canonicalJSON(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(raw), nil
}

func jobParams(j Job) wpcom.Params {
	if len(j.Params) == 0 {
		return nil
	}
	out := make(wpcom.Params, len(j.Params))
	for k, v := range j.Params {
		out[k] = v
	}
	return out
}
