package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

// Save writes the model and its tokenizer vocabulary to path.
func Save(path string, model *nn.GPT, tok *tokenizer.Char) error {
	params := model.Parameters()
	header := Header{
		Version:    FormatVersion,
		Config:     model.Config(),
		Vocab:      tok.Vocab(),
		ParamCount: len(params),
		CreatedAt:  time.Now().UTC(),
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshal checkpoint header: %w", err)
	}
	if len(headerJSON) > maxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, len(headerJSON))
	}

	var buf bytes.Buffer
	buf.Grow(8 + len(headerJSON) + 8*len(params) + checksumSize)
	buf.Write(MagicBytes[:])

	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("write header length: %w", err)
	}
	buf.Write(headerJSON)

	payload := make([]float64, len(params))
	for i, p := range params {
		payload[i] = p.Data
	}
	if err := binary.Write(&buf, binary.LittleEndian, payload); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}
