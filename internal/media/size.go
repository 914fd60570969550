package media

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize formats a byte count with binary units and at most two
// decimals, dropping trailing zeros: 0 is "0 Bytes", 1536 is "1.5 KB".
// Sizes of a terabyte and more are still expressed in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	i = min(i, len(sizeUnits)-1)

	value := float64(bytes) / math.Pow(k, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
