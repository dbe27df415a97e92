package validate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/vatcheck/internal/ports"
)

// StreamResult — статистика проверки потока номеров.
type StreamResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

func (r StreamResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.ValidLinesCount, r.InvalidLinesCount)
}

// ValidateStream — читает номера построчно (txt: номер в строке, jsonl: CheckRequest в строке),
// проверяет только ФОРМАТ и пишет нормализованные валидные номера в writer.
// Пустые строки пропускаются. Реестр не вызывается.
func ValidateStream(ctx context.Context, checker ports.FormatChecker, format InputFormat, ir io.Reader, ow io.Writer) (StreamResult, error) {
	var res StreamResult
	if format != FormatText && format != FormatJSONL {
		return res, fmt.Errorf("unsupported format: %s", format)
	}

	scanner := bufio.NewScanner(ir)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		vat := line
		if format == FormatJSONL {
			req, err := DecodeCheckRequest([]byte(line))
			if err != nil {
				res.InvalidLinesCount++
				continue
			}
			vat = req.VatNumber
		}

		if !checker.Check(vat) {
			res.InvalidLinesCount++
			continue
		}

		if _, err := fmt.Fprintln(ow, Normalize(vat)); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
