package entity

// NetworkDefinition holds the static description of a supported chain.
type NetworkDefinition struct {
	Chain            Chain
	Name             string
	NativeSymbol     string
	Decimals         uint8
	PrimaryRPCURL    string
	FallbackRPCURLs  []string
	BlockExplorerURL string
	// KnownTokens is the allow-list probed before any discovery. Empty for
	// chains without contract tokens.
	KnownTokens []TokenInfo
}

// RPCURLs returns the primary endpoint followed by the fallbacks.
func (d NetworkDefinition) RPCURLs() []string {
	urls := make([]string, 0, len(d.FallbackRPCURLs)+1)
	if d.PrimaryRPCURL != "" {
		urls = append(urls, d.PrimaryRPCURL)
	}
	return append(urls, d.FallbackRPCURLs...)
}
