package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/exp/rand"

	"github.com/microgpt-ml/microgpt/internal/nn"
	"github.com/microgpt-ml/microgpt/internal/tokenizer"
)

// Load reads a checkpoint and reconstructs the model and tokenizer.
func Load(path string) (*nn.GPT, *tokenizer.Char, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read checkpoint: %w", err)
	}
	if len(raw) < len(MagicBytes)+4+checksumSize {
		return nil, nil, ErrTruncated
	}
	if !bytes.Equal(raw[:len(MagicBytes)], MagicBytes[:]) {
		return nil, nil, ErrInvalidMagic
	}

	body := raw[:len(raw)-checksumSize]
	want := raw[len(raw)-checksumSize:]
	sum := sha256.Sum256(body)
	if !bytes.Equal(sum[:], want) {
		return nil, nil, ErrChecksumMismatch
	}

	headerLen := binary.LittleEndian.Uint32(body[4:8])
	if headerLen > maxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}
	if len(body) < 8+int(headerLen) {
		return nil, nil, ErrTruncated
	}

	var header Header
	if err := json.Unmarshal(body[8:8+headerLen], &header); err != nil {
		return nil, nil, fmt.Errorf("parse checkpoint header: %w", err)
	}
	if header.Version != FormatVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	if err := header.Config.Validate(); err != nil {
		return nil, nil, err
	}
	if header.ParamCount != header.Config.NumParams() {
		return nil, nil, fmt.Errorf("%w: header says %d, config needs %d",
			ErrParamCountMismatch, header.ParamCount, header.Config.NumParams())
	}

	payload := body[8+headerLen:]
	if len(payload) != 8*header.ParamCount {
		return nil, nil, fmt.Errorf("%w: payload holds %d values, header says %d",
			ErrParamCountMismatch, len(payload)/8, header.ParamCount)
	}

	// Weights are overwritten below, so the init source does not matter.
	model, err := nn.NewGPT(header.Config, rand.NewSource(0))
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, header.ParamCount)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, values); err != nil {
		return nil, nil, fmt.Errorf("read parameters: %w", err)
	}
	for i, p := range model.Parameters() {
		p.Data = values[i]
	}

	return model, tokenizer.NewCharFromVocab(header.Vocab), nil
}
