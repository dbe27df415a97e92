package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/vatcheck/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatText  InputFormat = "txt"
	FormatJSONL InputFormat = "jsonl"
)

// DetectFormat — формат по расширению файла (.jsonl → jsonl, иначе txt).
func DetectFormat(filePath string) InputFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatText
	}
}

// ValidateFile — проверяет формат номеров из файла и пишет валидные в writer.
func ValidateFile(ctx context.Context, checker ports.FormatChecker, filePath string, format InputFormat, ow io.Writer) (StreamResult, error) {
	if format == FormatAuto {
		format = DetectFormat(filePath)
	}
	if format != FormatText && format != FormatJSONL {
		// файл не открываем, если формат заведомо не поддерживается
		return StreamResult{}, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return StreamResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateStream(ctx, checker, format, file, ow)
}
