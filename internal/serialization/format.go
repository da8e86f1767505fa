// Package serialization reads and writes model checkpoints.
//
// Checkpoint layout (all integers little-endian):
//
//	[4]  magic "MGPT"
//	[4]  header length (uint32)
//	[N]  JSON header: format version, model config, tokenizer vocab,
//	     parameter count, creation time
//	[8P] parameter payload: float64 per parameter, in the model's
//	     Parameters() order
//	[32] SHA-256 over everything above
package serialization

import (
	"time"

	"github.com/microgpt-ml/microgpt/internal/nn"
)

// MagicBytes identifies a checkpoint file.
var MagicBytes = [4]byte{'M', 'G', 'P', 'T'}

// FormatVersion is the current checkpoint format version.
const FormatVersion = 1

// maxHeaderSize bounds the JSON header to keep corrupt length fields from
// driving huge allocations.
const maxHeaderSize = 1 << 20

// checksumSize is the length of the SHA-256 trailer.
const checksumSize = 32

// Header is the JSON metadata block of a checkpoint.
type Header struct {
	Version    int       `json:"version"`
	Config     nn.Config `json:"config"`
	Vocab      string    `json:"vocab"` // tokenizer runes in id order
	ParamCount int       `json:"param_count"`
	CreatedAt  time.Time `json:"created_at"`
}
