package assets

import (
	"context"
	"fmt"
	"log"
	"os"

	getter "github.com/hashicorp/go-getter"
)

// Fetch baixa um pacote de modelos de src (git::, http, s3, arquivo compactado...)
// para dst. Um dst já populado é substituído.
func Fetch(ctx context.Context, src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("falha ao limpar %s: %w", dst, err)
	}

	log.Printf("[Assets] Baixando modelos de %s para %s", src, dst)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("falha ao baixar modelos de %s: %w", src, err)
	}
	log.Printf("[Assets] Modelos baixados em %s", dst)
	return nil
}
