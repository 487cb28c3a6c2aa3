package codec

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// UnmarshalTOMLStrict rejects keys that do not map to a field of v.
func UnmarshalTOMLStrict(data []byte, v any) error {
	md, err := decodeTOML(data, v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownFields, strings.Join(keys, ", "))
	}
	return nil
}

func decodeTOML(data []byte, v any) (toml.MetaData, error) {
	if err := validateInput(data, v, MaxInputSize); err != nil {
		return toml.MetaData{}, err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return md, fmt.Errorf("codec: %w", err)
	}
	return md, nil
}
