// Package artifact serializa o resultado de uma geração no formato wire do
// protobuf e comprime o resultado com zstd.
//
// Layout (números de campo):
//
//	Artifact: 1=version 2=seed 3=axis 4=cell_size(fixed32) 5=positions 6=normals
//	          7=uvs (fixed32 empacotados) 8=indices (varint empacotados)
//	          9=material (repetido) 10=slab (repetido) 11=grid_digest
//	Material: 1=base_color(4 fixed32) 2=emissive(4 fixed32) 3=metallic 4=roughness
//	Slab:     1=index 2=membership 3=filter 4=part (repetido)
//	Part:     1=kind 2=half_extents(3) 3=rotation(4: w,x,y,z) 4=translation(3)
package artifact

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Version é a versão atual do formato.
const Version = 1

// ErrMalformed indica bytes que não formam um artefato válido.
var ErrMalformed = errors.New("artefato malformado")

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

func compress(raw []byte) []byte {
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4))
}

func decompress(data []byte) ([]byte, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("falha ao descomprimir artefato: %w", err)
	}
	return raw, nil
}
