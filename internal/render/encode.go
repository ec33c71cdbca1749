package render

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/vmihailenco/msgpack/v5"

	"starfetch/internal/sysinfo"
)

// Output formats.
const (
	FormatText    = "text"
	FormatTOML    = "toml"
	FormatMsgpack = "msgpack"
)

// Encode writes snap as a machine-readable document.
func Encode(w io.Writer, snap *sysinfo.Snapshot, format string) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encoding msgpack: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
