package utils

import "strings"

// BatchStrings разбивает срез строк на батчи.
func BatchStrings(items []string, batchSize int) [][]string {
	if batchSize <= 0 {
		batchSize = len(items) // Если размер батча некорректен, обрабатываем все как один батч
	}
	if len(items) == 0 {
		return [][]string{}
	}

	var batches [][]string
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}

// UniqueFold keeps the first occurrence of every string, comparing case-insensitively.
// Entries present in exclude are dropped as well.
func UniqueFold(items []string, exclude []string) []string {
	seen := make(map[string]struct{}, len(items)+len(exclude))
	for _, e := range exclude {
		seen[strings.ToLower(e)] = struct{}{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
