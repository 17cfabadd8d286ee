package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/validate"
)

const defaultWalletFilePath = "data/wallets.txt"

// Entry is one wallet line of the import file.
type Entry struct {
	Chain   entity.Chain
	Address string
	Name    string
}

// WalletFileLoader loads wallets to import from a text file. Each line is
// "chain,address[,name]"; blank lines and lines starting with # are ignored.
type WalletFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWalletFileLoader creates a new WalletFileLoader. An empty path selects the default.
func NewWalletFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *WalletFileLoader {
	if filePath == "" {
		filePath = defaultWalletFilePath
	}
	return &WalletFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetWallets reads wallet entries from the configured file path. Lines with an
// unknown chain or a malformed address are skipped.
func (l *WalletFileLoader) GetWallets() ([]Entry, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []Entry
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ",", 3)
		if len(parts) < 2 {
			l.skip("Skipping line without chain and address", lineNum, line)
			continue
		}
		entry := Entry{
			Chain:   entity.Chain(strings.ToLower(strings.TrimSpace(parts[0]))),
			Address: strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			entry.Name = strings.TrimSpace(parts[2])
		}

		if !addressValid(entry.Chain, entry.Address) {
			l.skip("Skipping invalid wallet address format", lineNum, line)
			continue
		}
		wallets = append(wallets, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	}
	return wallets, nil
}

func (l *WalletFileLoader) skip(msg string, lineNum int, line string) {
	if l.loggerInfo != nil {
		l.loggerInfo(msg, "file", l.filePath, "line_number", lineNum, "line", line)
	}
}

func addressValid(chain entity.Chain, address string) bool {
	switch chain {
	case entity.ChainEthereum:
		return validate.EthereumAddress(address)
	case entity.ChainBitcoin:
		return validate.BitcoinAddress(address)
	default:
		return false
	}
}
