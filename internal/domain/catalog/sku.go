package catalog

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// GenerateSKU builds a product SKU of the form CAT-SUB-TIMESTAMP-RANDOM
// from the category and subcategory slugs.
func GenerateSKU(categorySlug, subcategorySlug string) string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(1000))
	return fmt.Sprintf("%s-%s-%s-%03d", slugPrefix(categorySlug), slugPrefix(subcategorySlug), ts, n.Int64())
}

// VariantSKU derives a variant SKU from the parent product SKU:
// MAIN-SKU-V01, MAIN-SKU-V02, ...
func VariantSKU(productSKU string, index int) string {
	return fmt.Sprintf("%s-V%02d", productSKU, index+1)
}

// Slugify lowercases a name and collapses non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func slugPrefix(slug string) string {
	s := strings.ToUpper(slug)
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}
