package tokenloader

import (
	"fmt"
	"os"
	"strings"

	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/validate"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTokenFilePath = "data/tokens/ethereum.json"

// TokenFileLoader reads a token allow-list from a JSON array of TokenInfo.
type TokenFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewTokenLoader creates a new TokenFileLoader. An empty path selects the default.
func NewTokenLoader(filePath string, loggerInfo func(msg string, args ...any), loggerWarn func(msg string, args ...any)) *TokenFileLoader {
	if filePath == "" {
		filePath = defaultTokenFilePath
	}
	return &TokenFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
		loggerWarn: loggerWarn,
	}
}

// LoadTokens parses the file, keeping file order. Entries with a malformed
// address or a duplicate contract are skipped. Symbols are upper-cased.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func (l *TokenFileLoader) LoadTokens() ([]entity.TokenInfo, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", l.filePath, err)
	}

	var tokensInFile []entity.TokenInfo
	if err := json.Unmarshal(data, &tokensInFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens from %s: %w", l.filePath, err)
	}

	seen := make(map[string]struct{}, len(tokensInFile))
	valid := make([]entity.TokenInfo, 0, len(tokensInFile))
	for _, token := range tokensInFile {
		if !validate.EthereumAddress(token.Address) {
			if l.loggerWarn != nil {
				l.loggerWarn("Token has malformed contract address, skipping token.", "file", l.filePath, "token_symbol", token.Symbol, "token_address", token.Address)
			}
			continue
		}
		key := strings.ToLower(token.Address)
		if _, dup := seen[key]; dup {
			if l.loggerWarn != nil {
				l.loggerWarn("Duplicate token contract in file, skipping token.", "file", l.filePath, "token_address", token.Address)
			}
			continue
		}
		seen[key] = struct{}{}
		token.Symbol = strings.ToUpper(strings.TrimSpace(token.Symbol))
		valid = append(valid, token)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Successfully loaded tokens from file", "file", l.filePath, "count", len(valid))
	}
	return valid, nil
}
