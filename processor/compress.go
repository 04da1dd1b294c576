// processor/compress.go
package processor

import (
	"fmt"

	"github.com/golang/snappy"
)

// CompressPayload сжимает исходный файл данных перед хранением в памяти
func CompressPayload(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// DecompressPayload восстанавливает исходные байты файла данных
func DecompressPayload(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки данных: %w", err)
	}
	return decompressed, nil
}
