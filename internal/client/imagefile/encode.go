package imagefile

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

const fallbackType = "application/octet-stream"

// EncodeToTransferable reads the whole file and returns it as a data URL,
// data:<mime>;base64,<payload>. Open and read errors are returned as is.
func EncodeToTransferable(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	mimeType := f.Type()
	if mimeType == "" {
		mimeType = fallbackType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatByteSize renders n with binary units and two decimals,
// e.g. 1536 -> "1.50 KB". Zero is "0 Bytes"; GB is the largest unit.
func FormatByteSize(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}

	v := float64(n)
	i := 0
	for (v >= 1024 || v <= -1024) && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[i])
}
