package domain

// CachedContract is a loaded contract together with the hash of the file it
// was loaded from.
type CachedContract struct {
	ContractPath string    `json:"contract_path"`
	ContentHash  string    `json:"content_hash"`
	Contract     *Contract `json:"contract"`
}

// IsInvalidated reports whether the cache no longer matches the contract file.
func (c *CachedContract) IsInvalidated(contractPath, contentHash string) bool {
	return c.Contract == nil || c.ContractPath != contractPath || c.ContentHash != contentHash
}
